package lifts

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftboard/internal/apperr"
	"github.com/2beens/liftboard/internal/auth"
	"github.com/2beens/liftboard/internal/telemetry/tracing"
	"github.com/2beens/liftboard/internal/validation"
	"github.com/2beens/liftboard/pkg"
)

// DefaultLeaderboardWeightType is used when the leaderboard request has no weight_type.
const DefaultLeaderboardWeightType = Pounds

type LiftsResponse struct {
	Lifts []Lift `json:"lifts"`
}

type Handler struct {
	service    *Service
	aggregator *Aggregator
}

func NewHandler(service *Service, aggregator *Aggregator) *Handler {
	return &Handler{
		service:    service,
		aggregator: aggregator,
	}
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.lifts.create")
	defer span.End()

	identity, ok := auth.FromContext(ctx)
	if !ok {
		apperr.WriteResponse(w, apperr.Auth("no token provided"))
		return
	}

	var input LiftInput
	if err := validation.DecodeJSONBody(r, &input); err != nil {
		apperr.WriteResponse(w, err)
		return
	}
	if input.UserID != "" && input.UserID != identity.UserID.String() {
		log.Debugf("create lift: ignoring payload user_id [%s] from [%s]", input.UserID, identity.UserID)
	}

	lift, err := handler.service.Create(ctx, identity.UserID, input)
	if err != nil {
		apperr.WriteResponse(w, err)
		return
	}

	pkg.WriteJSON(w, lift, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.lifts.list")
	defer span.End()

	identity, ok := auth.FromContext(ctx)
	if !ok {
		apperr.WriteResponse(w, apperr.Auth("no token provided"))
		return
	}

	lifts, err := handler.service.List(ctx, identity.UserID)
	if err != nil {
		apperr.WriteResponse(w, err)
		return
	}

	pkg.WriteJSON(w, LiftsResponse{Lifts: lifts}, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.lifts.update")
	defer span.End()

	identity, ok := auth.FromContext(ctx)
	if !ok {
		apperr.WriteResponse(w, apperr.Auth("no token provided"))
		return
	}

	liftID, err := liftIDFromPath(r)
	if err != nil {
		apperr.WriteResponse(w, err)
		return
	}
	span.SetAttributes(attribute.String("lift.id", liftID.String()))

	var input LiftInput
	if err := validation.DecodeJSONBody(r, &input); err != nil {
		apperr.WriteResponse(w, err)
		return
	}

	lift, err := handler.service.Update(ctx, identity.UserID, liftID, input)
	if err != nil {
		apperr.WriteResponse(w, err)
		return
	}

	pkg.WriteJSON(w, lift, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.lifts.delete")
	defer span.End()

	identity, ok := auth.FromContext(ctx)
	if !ok {
		apperr.WriteResponse(w, apperr.Auth("no token provided"))
		return
	}

	liftID, err := liftIDFromPath(r)
	if err != nil {
		apperr.WriteResponse(w, err)
		return
	}
	span.SetAttributes(attribute.String("lift.id", liftID.String()))

	deleted, err := handler.service.Delete(ctx, identity.UserID, liftID)
	if err != nil {
		apperr.WriteResponse(w, err)
		return
	}

	pkg.WriteJSON(w, deleted, http.StatusOK)
}

func (handler *Handler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.lifts.leaderboard")
	defer span.End()

	weightType := DefaultLeaderboardWeightType
	if raw := r.URL.Query().Get("weight_type"); raw != "" {
		parsed, err := ParseWeightType(raw)
		if err != nil {
			apperr.WriteResponse(w, err)
			return
		}
		weightType = parsed
	}

	leaderboard, err := handler.aggregator.BuildLeaderboard(ctx, weightType)
	if err != nil {
		apperr.WriteResponse(w, err)
		return
	}

	pkg.WriteJSON(w, leaderboard, http.StatusOK)
}

func liftIDFromPath(r *http.Request) (uuid.UUID, error) {
	rawID := mux.Vars(r)["id"]
	if rawID == "" {
		return uuid.Nil, apperr.Validation("lift id missing")
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid lift id")
	}
	return id, nil
}
