package apperr

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftboard/pkg"
)

// WriteResponse writes err as a JSON error body with the status code of its kind.
func WriteResponse(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Errorf("request failed: %s", err)
	} else {
		log.Tracef("request rejected [%d]: %s", status, err)
	}
	pkg.WriteErrorResponse(w, PublicMessage(err), status)
}
