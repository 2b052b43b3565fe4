package middleware

import (
	"net/http"
	"runtime/debug"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftboard/internal/auth"
	"github.com/2beens/liftboard/internal/telemetry/metrics"
	"github.com/2beens/liftboard/pkg"
)

// PanicRecovery turns a handler panic into a JSON 500 and counts it.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				fields := log.Fields{
					"method": req.Method,
					"path":   req.URL.Path,
				}
				if identity, ok := auth.FromContext(req.Context()); ok {
					fields["user_id"] = identity.UserID.String()
				}
				log.WithFields(fields).Errorf("http: panic serving request: %v\n%s", r, debug.Stack())

				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				pkg.WriteErrorResponse(respWriter, "internal error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(respWriter, req)
		})
	}
}
