package misc

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/2beens/liftboard/internal/telemetry/tracing"
	"github.com/2beens/liftboard/pkg"
)

type VersionResponse struct {
	Version string `json:"version"`
}

type Handler struct {
	versionInfo string
}

func NewHandler(versionInfo string) *Handler {
	return &Handler{
		versionInfo: versionInfo,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET", "OPTIONS").Name("version")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.version")
	defer span.End()

	version := handler.versionInfo
	if version == "" {
		version = "unknown"
	}
	pkg.WriteJSON(w, VersionResponse{Version: version}, http.StatusOK)
}
