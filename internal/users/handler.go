package users

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/2beens/liftboard/internal/apperr"
	"github.com/2beens/liftboard/internal/auth"
	"github.com/2beens/liftboard/internal/lifts"
	"github.com/2beens/liftboard/internal/telemetry/tracing"
	"github.com/2beens/liftboard/internal/validation"
	"github.com/2beens/liftboard/pkg"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.signUp")
	defer span.End()

	var credentials Credentials
	if err := validation.DecodeJSONBody(r, &credentials); err != nil {
		apperr.WriteResponse(w, err)
		return
	}

	tokenResp, err := handler.service.SignUp(ctx, credentials)
	if err != nil {
		apperr.WriteResponse(w, err)
		return
	}

	pkg.WriteJSON(w, tokenResp, http.StatusCreated)
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.login")
	defer span.End()

	var credentials Credentials
	if err := validation.DecodeJSONBody(r, &credentials); err != nil {
		apperr.WriteResponse(w, err)
		return
	}

	tokenResp, err := handler.service.Login(ctx, credentials)
	if err != nil {
		apperr.WriteResponse(w, err)
		return
	}

	pkg.WriteJSON(w, tokenResp, http.StatusOK)
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.logout")
	defer span.End()

	identity, ok := auth.FromContext(ctx)
	if !ok {
		apperr.WriteResponse(w, apperr.Auth("no token provided"))
		return
	}

	if err := handler.service.Logout(ctx, identity); err != nil {
		apperr.WriteResponse(w, err)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}

func (handler *Handler) HandleGetCurrent(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.getCurrent")
	defer span.End()

	identity, ok := auth.FromContext(ctx)
	if !ok {
		apperr.WriteResponse(w, apperr.Auth("no token provided"))
		return
	}

	user, err := handler.service.GetByID(ctx, identity.UserID)
	if err != nil {
		apperr.WriteResponse(w, err)
		return
	}

	pkg.WriteJSON(w, user, http.StatusOK)
}

func (handler *Handler) HandleGetByUsername(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.getByUsername")
	defer span.End()

	username := mux.Vars(r)["username"]
	if username == "" {
		apperr.WriteResponse(w, apperr.Validation("username missing"))
		return
	}

	user, err := handler.service.GetByUsername(ctx, username)
	if err != nil {
		apperr.WriteResponse(w, err)
		return
	}

	pkg.WriteJSON(w, user, http.StatusOK)
}

func (handler *Handler) HandleProfileByUsername(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.profileByUsername")
	defer span.End()

	username := mux.Vars(r)["username"]
	if username == "" {
		apperr.WriteResponse(w, apperr.Validation("username missing"))
		return
	}

	params, err := profileParams(r)
	if err != nil {
		apperr.WriteResponse(w, err)
		return
	}

	profile, err := handler.service.ProfileByUsername(ctx, username, params)
	if err != nil {
		apperr.WriteResponse(w, err)
		return
	}

	pkg.WriteJSON(w, profile, http.StatusOK)
}

func (handler *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.profile")
	defer span.End()

	identity, ok := auth.FromContext(ctx)
	if !ok {
		apperr.WriteResponse(w, apperr.Auth("no token provided"))
		return
	}

	params, err := profileParams(r)
	if err != nil {
		apperr.WriteResponse(w, err)
		return
	}

	profile, err := handler.service.ProfileByID(ctx, identity.UserID, params)
	if err != nil {
		apperr.WriteResponse(w, err)
		return
	}

	pkg.WriteJSON(w, profile, http.StatusOK)
}

func profileParams(r *http.Request) (lifts.ProfileParams, error) {
	query := r.URL.Query()
	return lifts.NewProfileParams(query.Get("sort_by"), query.Get("weight_type"))
}
