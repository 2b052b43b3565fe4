package middleware

import (
	"context"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/liftboard/internal/apperr"
	"github.com/2beens/liftboard/internal/auth"
	"github.com/2beens/liftboard/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test

type tokenVerifier interface {
	Verify(ctx context.Context, token string) (auth.Identity, error)
}

type AuthMiddlewareHandler struct {
	verifier tokenVerifier

	// keyed by "METHOD /path"
	allowedRoutes        map[string]bool
	allowedRoutePrefixes []string
}

func NewAuthMiddlewareHandler(verifier tokenVerifier) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		verifier: verifier,
		allowedRoutes: map[string]bool{
			"GET /":        true,
			"GET /version": true,

			// sign up and login
			"POST /user":  true,
			"POST /login": true,

			"GET /leaderboard":         true,
			"GET /calculator":          true,
			"GET /calculator/formulas": true,
		},
		allowedRoutePrefixes: []string{
			// user by name and their profile
			"GET /user/",
		},
	}
}

func (h *AuthMiddlewareHandler) routeIsAlwaysAllowed(method, path string) bool {
	route := method + " " + path
	if h.allowedRoutes[route] {
		return true
	}
	for _, prefix := range h.allowedRoutePrefixes {
		if strings.HasPrefix(route, prefix) {
			return true
		}
	}
	return false
}

// AuthCheck lets public routes through and requires a valid bearer token for all
// others. The verified identity is added to the request context.
func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.routeIsAlwaysAllowed(r.Method, r.URL.Path) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r)
			if token == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s %s", r.Method, r.URL.Path)
				apperr.WriteResponse(w, apperr.Auth("no token provided"))
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			identity, err := h.verifier.Verify(ctx, token)
			if err != nil {
				log.Tracef("[invalid token] [auth middleware] unauthorized => %s %s: %s", r.Method, r.URL.Path, err)
				apperr.WriteResponse(w, err)
				span.SetStatus(codes.Error, "invalid-token")
				span.RecordError(err)
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.NewContext(r.Context(), identity)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
