package formula

import (
	"fmt"
	"math"
	"strings"

	"github.com/2beens/liftboard/internal/apperr"
)

const (
	MinReps = 1
	MaxReps = 16
)

type Formula string

const (
	Epley    Formula = "epley"
	Brzycki  Formula = "brzycki"
	Lombardi Formula = "lombardi"
	OConnor  Formula = "oConnor"
	Wathan   Formula = "wathan"
)

// RepMaxes maps a rep count (1..16) to the max weight estimated for it.
type RepMaxes map[int]float64

// Formulas returns all supported formulas in a stable order.
func Formulas() []Formula {
	return []Formula{Epley, Brzycki, Lombardi, OConnor, Wathan}
}

// ParseFormula is case-insensitive, "oconnor" and "o'connor" are accepted for OConnor.
func ParseFormula(name string) (Formula, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "epley":
		return Epley, nil
	case "brzycki":
		return Brzycki, nil
	case "lombardi":
		return Lombardi, nil
	case "oconnor", "o'connor":
		return OConnor, nil
	case "wathan":
		return Wathan, nil
	default:
		return "", apperr.Validation(fmt.Sprintf("unknown formula: %q", name))
	}
}

func (f Formula) valid() bool {
	switch f {
	case Epley, Brzycki, Lombardi, OConnor, Wathan:
		return true
	}
	return false
}

func validate(weight float64, reps int, f Formula) error {
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight <= 0 {
		return apperr.Validation("weight must be a positive number")
	}
	if reps < MinReps || reps > MaxReps {
		return apperr.Validation(fmt.Sprintf("reps must be between %d and %d", MinReps, MaxReps))
	}
	if !f.valid() {
		return apperr.Validation(fmt.Sprintf("unknown formula: %q", f))
	}
	return nil
}

// OneRepMax estimates the one rep max from a set of reps performed with weight.
func OneRepMax(weight float64, reps int, f Formula) (float64, error) {
	if err := validate(weight, reps, f); err != nil {
		return 0, err
	}
	return oneRepMax(weight, float64(reps), f), nil
}

// Estimate projects the estimated max for every rep count in [MinReps, MaxReps].
// The entry for a single rep is the one rep max itself.
func Estimate(weight float64, performedReps int, f Formula) (RepMaxes, error) {
	if err := validate(weight, performedReps, f); err != nil {
		return nil, err
	}

	orm := oneRepMax(weight, float64(performedReps), f)
	maxes := make(RepMaxes, MaxReps)
	for r := MinReps; r <= MaxReps; r++ {
		maxes[r] = project(orm, float64(r), f)
	}
	return maxes, nil
}

// PersistedOneRepMax is the value stored with every lift, always Epley.
func PersistedOneRepMax(weight float64, reps int) float64 {
	return weight * (1 + float64(reps)/30)
}

func oneRepMax(w, n float64, f Formula) float64 {
	switch f {
	case Brzycki:
		return w / (1.0278 - 0.0278*n)
	case Lombardi:
		return w * math.Pow(n, 0.10)
	case OConnor:
		return w * (1 + 0.025*n)
	case Wathan:
		return 100 * w / (48.8 + 53.8*math.Exp(-0.075*n))
	default:
		return w * (1 + n/30)
	}
}

func project(orm, r float64, f Formula) float64 {
	if r == 1 {
		return orm
	}
	switch f {
	case Brzycki:
		return orm * (37 - r) / 36
	case Lombardi:
		return orm / math.Pow(r, 0.10)
	case OConnor:
		return orm / (1 + 0.025*r)
	case Wathan:
		return orm * (48.8 + 53.8*math.Exp(-0.075*r)) / 100
	default:
		return orm / (1 + r/30)
	}
}
