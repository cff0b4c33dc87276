package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Dan9191/matrix-service/internal/models"
	"github.com/Dan9191/matrix-service/internal/numerology"
	"github.com/Dan9191/matrix-service/internal/service"
)

// writeJSON encodes v before touching the response so an encoding failure
// still yields a 500
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"internal error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func writeXML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// writeError maps service errors onto status codes. Anything unrecognised is
// logged and reported as 500 without details.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	default:
		h.log.WithError(err).Error("Request failed")
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, models.ErrorResponse{Error: err.Error()})
}

func dateParam(r *http.Request, name string) (numerology.CalendarDate, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return numerology.CalendarDate{}, fmt.Errorf("%w: %s is required", service.ErrInvalidInput, name)
	}
	d, err := numerology.ParseDate(raw)
	if err != nil {
		return numerology.CalendarDate{}, fmt.Errorf("%w: %s: %v", service.ErrInvalidInput, name, err)
	}
	return d, nil
}

func intParam(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", service.ErrInvalidInput, name)
	}
	return n, nil
}
