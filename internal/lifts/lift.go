package lifts

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/2beens/liftboard/internal/apperr"
	"github.com/2beens/liftboard/internal/formula"
)

const (
	MinReps = 1
	MaxReps = 20
)

type LiftType string

const (
	BenchPress LiftType = "Bench Press"
	Squat      LiftType = "Squat"
	Deadlift   LiftType = "Deadlift"
	Other      LiftType = "Other"
)

// AllLiftTypes lists every lift type, in display order.
var AllLiftTypes = []LiftType{BenchPress, Squat, Deadlift, Other}

func ParseLiftType(s string) (LiftType, error) {
	for _, lt := range AllLiftTypes {
		if string(lt) == s {
			return lt, nil
		}
	}
	return "", apperr.Validation(fmt.Sprintf("invalid lift type: %q", s))
}

type WeightType string

const (
	Kilograms WeightType = "kg"
	Pounds    WeightType = "lbs"
)

func ParseWeightType(s string) (WeightType, error) {
	switch WeightType(s) {
	case Kilograms, Pounds:
		return WeightType(s), nil
	default:
		return "", apperr.Validation(fmt.Sprintf("invalid weight type: %q, expected kg or lbs", s))
	}
}

type Lift struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Type       LiftType   `json:"type"`
	Reps       int        `json:"reps"`
	Weight     float64    `json:"weight"`
	WeightType WeightType `json:"weight_type"`
	OneRepMax  float64    `json:"one_rep_max"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// LiftInput is the client payload for create and update. Updates replace the whole
// record, so every field is required in both cases. A client supplied user_id
// is accepted for compatibility but never used.
type LiftInput struct {
	UserID     string  `json:"user_id,omitempty"`
	Type       string  `json:"type" validate:"required,oneof='Bench Press' Squat Deadlift Other"`
	Reps       int     `json:"reps" validate:"required,min=1,max=20"`
	Weight     float64 `json:"weight" validate:"required,gt=0"`
	WeightType string  `json:"weight_type" validate:"required,oneof=kg lbs"`
}

// apply copies the input fields onto l and recomputes the one rep max.
func (in LiftInput) apply(l *Lift) error {
	liftType, err := ParseLiftType(in.Type)
	if err != nil {
		return err
	}
	weightType, err := ParseWeightType(in.WeightType)
	if err != nil {
		return err
	}
	if in.Reps < MinReps || in.Reps > MaxReps {
		return apperr.Validation(fmt.Sprintf("reps must be between %d and %d", MinReps, MaxReps))
	}
	if in.Weight <= 0 {
		return apperr.Validation("weight must be positive")
	}

	l.Type = liftType
	l.Reps = in.Reps
	l.Weight = in.Weight
	l.WeightType = weightType
	l.OneRepMax = formula.PersistedOneRepMax(in.Weight, in.Reps)
	return nil
}
