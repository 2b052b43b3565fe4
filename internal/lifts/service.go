package lifts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftboard/internal/apperr"
	"github.com/2beens/liftboard/internal/telemetry/metrics"
	"github.com/2beens/liftboard/internal/telemetry/tracing"
	"github.com/2beens/liftboard/internal/validation"
)

//go:generate mockgen -source=$GOFILE -destination=lifts_mocks_test.go -package=lifts_test

type liftsRepo interface {
	Create(ctx context.Context, lift Lift) error
	Get(ctx context.Context, id uuid.UUID) (*Lift, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Lift, error)
	ListTop(ctx context.Context, liftType LiftType, weightType WeightType, limit int) ([]Lift, error)
	Update(ctx context.Context, lift Lift) error
	Delete(ctx context.Context, id uuid.UUID) (*Lift, error)
}

type usernameResolver interface {
	Username(ctx context.Context, userID uuid.UUID) (string, error)
}

// Service applies the ownership and mutation rules for lifts.
type Service struct {
	repo           liftsRepo
	metricsManager *metrics.Manager
	nowFunc        func() time.Time
}

func NewService(repo liftsRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		metricsManager: metricsManager,
		nowFunc:        time.Now,
	}
}

// Create stores a new lift owned by ownerID. Any owner in the input is ignored.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, input LiftInput) (_ *Lift, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.lifts.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	now := s.nowFunc().UTC()
	lift := Lift{
		ID:        uuid.New(),
		UserID:    ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := input.apply(&lift); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, lift); err != nil {
		if errors.Is(err, ErrOwnerNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Dependency(err, "create lift")
	}
	span.SetAttributes(attribute.String("lift.id", lift.ID.String()))

	s.metricsManager.CounterLiftsCreated.WithLabelValues(string(lift.Type), string(lift.WeightType)).Inc()
	log.Debugf("lift [%s] created by [%s]: %s %d x %.2f %s", lift.ID, ownerID, lift.Type, lift.Reps, lift.Weight, lift.WeightType)

	return &lift, nil
}

// List returns the caller's lifts, newest first.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) (_ []Lift, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.lifts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	lifts, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Dependency(err, "list lifts")
	}
	if lifts == nil {
		lifts = []Lift{}
	}
	return lifts, nil
}

// Update replaces type, reps, weight and weight type of a lift owned by callerID.
// A missing lift is reported before an ownership mismatch.
func (s *Service) Update(ctx context.Context, callerID, liftID uuid.UUID, input LiftInput) (_ *Lift, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.lifts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("lift.id", liftID.String()))

	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	lift, err := s.ownedLift(ctx, callerID, liftID)
	if err != nil {
		return nil, err
	}

	if err := input.apply(lift); err != nil {
		return nil, err
	}
	lift.UpdatedAt = s.nowFunc().UTC()

	if err := s.repo.Update(ctx, *lift); err != nil {
		if errors.Is(err, ErrLiftNotFound) {
			// deleted in the meantime
			return nil, apperr.NotFound("lift not found")
		}
		return nil, apperr.Dependency(err, "update lift")
	}

	s.metricsManager.CounterLiftsUpdated.Inc()
	return lift, nil
}

// Delete permanently removes a lift owned by callerID and returns it.
func (s *Service) Delete(ctx context.Context, callerID, liftID uuid.UUID) (_ *Lift, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.lifts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("lift.id", liftID.String()))

	if _, err := s.ownedLift(ctx, callerID, liftID); err != nil {
		return nil, err
	}

	deleted, err := s.repo.Delete(ctx, liftID)
	if err != nil {
		if errors.Is(err, ErrLiftNotFound) {
			return nil, apperr.NotFound("lift not found")
		}
		return nil, apperr.Dependency(err, "delete lift")
	}

	s.metricsManager.CounterLiftsDeleted.Inc()
	log.Debugf("lift [%s] deleted by [%s]", liftID, callerID)
	return deleted, nil
}

func (s *Service) ownedLift(ctx context.Context, callerID, liftID uuid.UUID) (*Lift, error) {
	lift, err := s.repo.Get(ctx, liftID)
	if err != nil {
		if errors.Is(err, ErrLiftNotFound) {
			return nil, apperr.NotFound("lift not found")
		}
		return nil, apperr.Dependency(err, fmt.Sprintf("get lift %s", liftID))
	}
	if lift.UserID != callerID {
		log.Warnf("user [%s] tried to modify lift [%s] owned by [%s]", callerID, liftID, lift.UserID)
		return nil, apperr.Ownership("you can only modify your own lifts")
	}
	return lift, nil
}
