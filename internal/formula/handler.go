package formula

import (
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftboard/internal/apperr"
	"github.com/2beens/liftboard/internal/telemetry/tracing"
	"github.com/2beens/liftboard/pkg"
)

type CalculatorResponse struct {
	Formula   Formula  `json:"formula"`
	Weight    float64  `json:"weight"`
	Reps      int      `json:"reps"`
	OneRepMax float64  `json:"one_rep_max"`
	RepMaxes  RepMaxes `json:"rep_maxes"`
}

type FormulasResponse struct {
	Formulas []Formula `json:"formulas"`
	Default  Formula   `json:"default"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (handler *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculator.calculate")
	defer span.End()

	query := r.URL.Query()
	weight, err := strconv.ParseFloat(query.Get("weight"), 64)
	if err != nil {
		apperr.WriteResponse(w, apperr.Validation("weight must be a number"))
		return
	}
	reps, err := strconv.Atoi(query.Get("reps"))
	if err != nil {
		apperr.WriteResponse(w, apperr.Validation("reps must be an integer"))
		return
	}

	f := Epley
	if name := query.Get("formula"); name != "" {
		if f, err = ParseFormula(name); err != nil {
			apperr.WriteResponse(w, err)
			return
		}
	}
	span.SetAttributes(
		attribute.String("formula", string(f)),
		attribute.Int("reps", reps),
	)

	repMaxes, err := Estimate(weight, reps, f)
	if err != nil {
		apperr.WriteResponse(w, err)
		return
	}

	pkg.WriteJSON(w, CalculatorResponse{
		Formula:   f,
		Weight:    weight,
		Reps:      reps,
		OneRepMax: repMaxes[1],
		RepMaxes:  repMaxes,
	}, http.StatusOK)
}

func (handler *Handler) HandleFormulas(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculator.formulas")
	defer span.End()

	pkg.WriteJSON(w, FormulasResponse{
		Formulas: Formulas(),
		Default:  Epley,
	}, http.StatusOK)
}
