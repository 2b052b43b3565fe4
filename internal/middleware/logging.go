package middleware

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftboard/pkg"
)

func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if log.IsLevelEnabled(log.TraceLevel) {
				userIP, _ := pkg.ReadUserIP(r)
				log.WithFields(log.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
					"ip":     userIP,
					"ua":     r.Header.Get("User-Agent"),
				}).Trace(" ====> request")
			}
			next.ServeHTTP(w, r)
		})
	}
}
