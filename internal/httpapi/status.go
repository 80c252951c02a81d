package httpapi

import (
	"net/http"
	"time"
)

// Version is reported by the status endpoint.  It is set by the linker
// at build time.
var Version = "1.0.0"

type statusResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	env := h.env
	if env == "" {
		env = "Production"
	}
	writeJSON(w, http.StatusOK, statusResponse{
		Status:      "OK",
		Message:     "User directory API is running successfully!",
		Timestamp:   h.now().UTC().Format("2006-01-02 15:04:05 UTC"),
		Version:     Version,
		Environment: env,
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "Healthy",
		Timestamp: h.now().UTC(),
	})
}
