//go:build integration_test

package test

import (
	"context"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/2beens/liftboard/internal/formula"
	"github.com/2beens/liftboard/internal/lifts"
	"github.com/2beens/liftboard/internal/users"
)

func (s *IntegrationTestSuite) createUser(ctx context.Context, username string) users.User {
	user := users.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: "not-a-real-hash",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
	s.Require().NoError(users.NewRepo(s.pgPool).Create(ctx, user))
	return user
}

func newLift(ownerID uuid.UUID, liftType lifts.LiftType, reps int, weight float64, weightType lifts.WeightType) lifts.Lift {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return lifts.Lift{
		ID:         uuid.New(),
		UserID:     ownerID,
		Type:       liftType,
		Reps:       reps,
		Weight:     weight,
		WeightType: weightType,
		OneRepMax:  formula.PersistedOneRepMax(weight, reps),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (s *IntegrationTestSuite) TestUsersRepo() {
	ctx := context.Background()
	repo := users.NewRepo(s.pgPool)

	alice := s.createUser(ctx, "alice")

	found, err := repo.FindByUsername(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(alice.ID, found.ID)
	s.Equal("not-a-real-hash", found.PasswordHash)
	s.True(alice.CreatedAt.Equal(found.CreatedAt))

	found, err = repo.FindByID(ctx, alice.ID)
	s.Require().NoError(err)
	s.Equal("alice", found.Username)

	err = repo.Create(ctx, users.User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: "other-hash",
		CreatedAt:    time.Now().UTC(),
	})
	s.ErrorIs(err, users.ErrUsernameTaken)

	// first user left untouched
	found, err = repo.FindByUsername(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(alice.ID, found.ID)
	s.Equal("not-a-real-hash", found.PasswordHash)

	_, err = repo.FindByUsername(ctx, "bob")
	s.ErrorIs(err, users.ErrUserNotFound)
	_, err = repo.FindByID(ctx, uuid.New())
	s.ErrorIs(err, users.ErrUserNotFound)
}

func (s *IntegrationTestSuite) TestLiftsRepo() {
	ctx := context.Background()
	repo := lifts.NewRepo(s.pgPool)

	alice := s.createUser(ctx, "alice")

	err := repo.Create(ctx, newLift(uuid.New(), lifts.Squat, 5, 200, lifts.Pounds))
	s.ErrorIs(err, lifts.ErrOwnerNotFound)

	squat := newLift(alice.ID, lifts.Squat, 5, 200, lifts.Pounds)
	s.Require().NoError(repo.Create(ctx, squat))

	got, err := repo.Get(ctx, squat.ID)
	s.Require().NoError(err)
	s.Equal(squat.UserID, got.UserID)
	s.InDelta(233.333, got.OneRepMax, 0.001)
	s.True(squat.CreatedAt.Equal(got.CreatedAt))

	squat.Reps = 3
	squat.Weight = 210
	squat.OneRepMax = formula.PersistedOneRepMax(210, 3)
	squat.UpdatedAt = squat.UpdatedAt.Add(time.Minute)
	s.Require().NoError(repo.Update(ctx, squat))

	got, err = repo.Get(ctx, squat.ID)
	s.Require().NoError(err)
	s.Equal(3, got.Reps)
	s.InDelta(231.0, got.OneRepMax, 0.001)
	s.True(squat.CreatedAt.Equal(got.CreatedAt))

	missing := newLift(alice.ID, lifts.Squat, 1, 100, lifts.Pounds)
	s.ErrorIs(repo.Update(ctx, missing), lifts.ErrLiftNotFound)

	owned, err := repo.ListByOwner(ctx, alice.ID)
	s.Require().NoError(err)
	s.Len(owned, 1)

	deleted, err := repo.Delete(ctx, squat.ID)
	s.Require().NoError(err)
	s.Equal(squat.ID, deleted.ID)

	_, err = repo.Get(ctx, squat.ID)
	s.ErrorIs(err, lifts.ErrLiftNotFound)
	_, err = repo.Delete(ctx, squat.ID)
	s.ErrorIs(err, lifts.ErrLiftNotFound)
}

func (s *IntegrationTestSuite) TestLiftsRepo_ListTop() {
	ctx := context.Background()
	repo := lifts.NewRepo(s.pgPool)

	owner := s.createUser(ctx, "bench-enjoyer")
	for i := 0; i < 15; i++ {
		lift := newLift(
			owner.ID,
			lifts.BenchPress,
			gofakeit.IntRange(lifts.MinReps, lifts.MaxReps),
			gofakeit.Float64Range(20, 300),
			lifts.Kilograms,
		)
		s.Require().NoError(repo.Create(ctx, lift))
	}
	s.Require().NoError(repo.Create(ctx, newLift(owner.ID, lifts.BenchPress, 1, 1000, lifts.Pounds)))
	s.Require().NoError(repo.Create(ctx, newLift(owner.ID, lifts.Squat, 1, 1000, lifts.Kilograms)))

	top, err := repo.ListTop(ctx, lifts.BenchPress, lifts.Kilograms, lifts.LeaderboardSize)
	s.Require().NoError(err)
	s.Require().Len(top, lifts.LeaderboardSize)
	for i, lift := range top {
		s.Equal(lifts.BenchPress, lift.Type)
		s.Equal(lifts.Kilograms, lift.WeightType)
		if i > 0 {
			s.GreaterOrEqual(top[i-1].OneRepMax, lift.OneRepMax)
		}
	}

	empty, err := repo.ListTop(ctx, lifts.Deadlift, lifts.Kilograms, lifts.LeaderboardSize)
	s.Require().NoError(err)
	s.Empty(empty)
}
