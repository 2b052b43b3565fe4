//go:build integration_test

package test

import (
	"context"
	"net/http"

	"github.com/2beens/liftboard/internal/client"
	"github.com/2beens/liftboard/internal/lifts"
)

func squatInput() lifts.LiftInput {
	return lifts.LiftInput{Type: "Squat", Reps: 5, Weight: 200, WeightType: "lbs"}
}

func (s *IntegrationTestSuite) TestAliceScenario() {
	ctx := context.Background()

	session, err := s.client.SignUp(ctx, "alice", "pw1")
	s.Require().NoError(err)
	s.Require().True(session.LoggedIn())

	lift, err := s.client.CreateLift(ctx, session, squatInput())
	s.Require().NoError(err)
	s.InDelta(233.33, lift.OneRepMax, 0.01)

	board, err := s.client.Leaderboard(ctx, "lbs")
	s.Require().NoError(err)
	for _, liftType := range lifts.AllLiftTypes {
		s.Contains(board, liftType)
	}
	s.Require().Len(board[lifts.Squat], 1)
	row := board[lifts.Squat][0]
	s.Equal(1, row.Rank)
	s.Equal("alice", row.Username)
	s.Equal("233.3", row.OneRepMaxRounded)
	s.Equal(lift.ID, row.ID)

	kgBoard, err := s.client.Leaderboard(ctx, "kg")
	s.Require().NoError(err)
	s.Empty(kgBoard[lifts.Squat])

	profile, err := s.client.Profile(ctx, session, "", "", "")
	s.Require().NoError(err)
	s.Equal("alice", profile.Username)
	s.Len(profile.Groups[lifts.Squat], 1)
	s.Empty(profile.Groups[lifts.Deadlift])

	public, err := s.client.UserByName(ctx, "alice")
	s.Require().NoError(err)
	s.Len(public.Lifts, 1)
}

func (s *IntegrationTestSuite) TestSignUpDuplicate() {
	ctx := context.Background()

	_, err := s.client.SignUp(ctx, "alice", "pw1")
	s.Require().NoError(err)

	_, err = s.client.SignUp(ctx, "alice", "something-else")
	s.True(client.IsStatus(err, http.StatusConflict), err)

	// the first password still works
	_, err = s.client.Login(ctx, "alice", "pw1")
	s.NoError(err)
	_, err = s.client.Login(ctx, "alice", "something-else")
	s.True(client.IsStatus(err, http.StatusUnauthorized), err)
	_, err = s.client.Login(ctx, "nobody", "pw1")
	s.True(client.IsStatus(err, http.StatusNotFound), err)
}

func (s *IntegrationTestSuite) TestLiftOwnership() {
	ctx := context.Background()

	alice, err := s.client.SignUp(ctx, "alice", "pw1")
	s.Require().NoError(err)
	bob, err := s.client.SignUp(ctx, "bob", "pw2")
	s.Require().NoError(err)

	lift, err := s.client.CreateLift(ctx, alice, squatInput())
	s.Require().NoError(err)

	bobsInput := squatInput()
	bobsInput.UserID = lift.UserID.String()
	bobsInput.Weight = 500
	_, err = s.client.UpdateLift(ctx, bob, lift.ID, bobsInput)
	s.True(client.IsStatus(err, http.StatusForbidden), err)
	_, err = s.client.DeleteLift(ctx, bob, lift.ID)
	s.True(client.IsStatus(err, http.StatusForbidden), err)

	updated, err := s.client.UpdateLift(ctx, alice, lift.ID, lifts.LiftInput{
		Type: "Squat", Reps: 3, Weight: 210, WeightType: "lbs",
	})
	s.Require().NoError(err)
	s.InDelta(231.0, updated.OneRepMax, 0.001)
	s.True(lift.CreatedAt.Equal(updated.CreatedAt))

	bobsLifts, err := s.client.ListLifts(ctx, bob)
	s.Require().NoError(err)
	s.Empty(bobsLifts)

	deleted, err := s.client.DeleteLift(ctx, alice, lift.ID)
	s.Require().NoError(err)
	s.Equal(lift.ID, deleted.ID)

	_, err = s.client.DeleteLift(ctx, alice, lift.ID)
	s.True(client.IsStatus(err, http.StatusNotFound), err)
}

func (s *IntegrationTestSuite) TestLogoutRevokesToken() {
	ctx := context.Background()

	session, err := s.client.SignUp(ctx, "alice", "pw1")
	s.Require().NoError(err)
	revoked := *session

	s.Require().NoError(s.client.Logout(ctx, session))
	s.False(session.LoggedIn())

	_, err = s.client.ListLifts(ctx, &revoked)
	s.True(client.IsStatus(err, http.StatusUnauthorized), err)
	s.Contains(err.Error(), "token revoked")
}

func (s *IntegrationTestSuite) TestCalculator() {
	resp, err := s.client.Calculate(context.Background(), 100, 5, "epley")
	s.Require().NoError(err)
	s.InDelta(116.67, resp.OneRepMax, 0.01)
	s.InDelta(87.5, resp.RepMaxes[10], 0.01)
}
