package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Dan9191/matrix-service/internal/export"
	"github.com/Dan9191/matrix-service/internal/middleware"
	"github.com/Dan9191/matrix-service/internal/models"
	"github.com/Dan9191/matrix-service/internal/numerology"
	"github.com/Dan9191/matrix-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("%w: malformed body", service.ErrInvalidInput))
		return
	}
	user, err := h.svc.Register(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("%w: malformed body", service.ErrInvalidInput))
		return
	}
	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.TokenResponse{Token: token})
}

// TelegramAuth exchanges mini-app init data for a token
func (h *Handler) TelegramAuth(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InitData string `json:"init_data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.InitData == "" {
		h.writeError(w, fmt.Errorf("%w: init_data is required", service.ErrInvalidInput))
		return
	}
	token, err := h.svc.TelegramLogin(r.Context(), req.InitData)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.TokenResponse{Token: token})
}

// Chart returns the natal chart, as JSON or with format=xml as XML
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	d, err := dateParam(r, "date")
	if err != nil {
		h.writeError(w, err)
		return
	}
	chart, err := h.svc.Chart(r.Context(), d)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if r.URL.Query().Get("format") == "xml" {
		out, err := export.ChartXML(chart)
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeXML(w, out)
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

// MoneyCode returns the five-digit money code
func (h *Handler) MoneyCode(w http.ResponseWriter, r *http.Request) {
	d, err := dateParam(r, "date")
	if err != nil {
		h.writeError(w, err)
		return
	}
	mc, err := h.svc.MoneyCode(d)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mc)
}

// YearForecast returns the personal-year ring
func (h *Handler) YearForecast(w http.ResponseWriter, r *http.Request) {
	day, err1 := intParam(r, "day")
	month, err2 := intParam(r, "month")
	year, err3 := intParam(r, "year")
	if err := errors.Join(err1, err2, err3); err != nil {
		h.writeError(w, err)
		return
	}
	f, err := h.svc.YearForecast(r.Context(), day, month, year)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if r.URL.Query().Get("format") == "xml" {
		out, err := export.YearXML(f)
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeXML(w, out)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// MonthForecast returns the custom month matrix and its day ring. The energy
// pillar is taken from energy, or computed as today's age from birth.
func (h *Handler) MonthForecast(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	day, err1 := intParam(r, "day")
	month, err2 := intParam(r, "month")
	if err := errors.Join(err1, err2); err != nil {
		h.writeError(w, err)
		return
	}

	in := service.MonthInput{BirthDay: day, EventMonth: month}
	switch {
	case q.Get("energy") != "":
		energy, err := intParam(r, "energy")
		if err != nil {
			h.writeError(w, err)
			return
		}
		in.Energy = energy
	case q.Get("birth") != "":
		birth, err := dateParam(r, "birth")
		if err != nil {
			h.writeError(w, err)
			return
		}
		in.Energy = numerology.Age(birth, h.svc.Now())
	default:
		h.writeError(w, fmt.Errorf("%w: energy or birth is required", service.ErrInvalidInput))
		return
	}

	for name, dst := range map[string]**time.Time{"start": &in.Start, "end": &in.End} {
		if q.Get(name) == "" {
			continue
		}
		d, err := dateParam(r, name)
		if err != nil {
			h.writeError(w, err)
			return
		}
		t := d.Time()
		*dst = &t
	}

	f, err := h.svc.MonthForecast(in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// CurrentPeriod returns today's place in the personal year of a birth date
func (h *Handler) CurrentPeriod(w http.ResponseWriter, r *http.Request) {
	d, err := dateParam(r, "date")
	if err != nil {
		h.writeError(w, err)
		return
	}
	p, err := h.svc.CurrentPeriod(r.Context(), d)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// SaveDate stores a birth date in the caller's history
func (h *Handler) SaveDate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeError(w, service.ErrInvalidCredentials)
		return
	}
	var req models.SaveDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("%w: malformed body", service.ErrInvalidInput))
		return
	}
	rec, err := h.svc.SaveDate(r.Context(), userID, req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// ListDates returns the caller's history
func (h *Handler) ListDates(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeError(w, service.ErrInvalidCredentials)
		return
	}
	records, err := h.svc.ListDates(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if records == nil {
		records = []models.DateRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// DeleteDate removes one entry of the caller's history
func (h *Handler) DeleteDate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeError(w, service.ErrInvalidCredentials)
		return
	}
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.writeError(w, fmt.Errorf("%w: bad id", service.ErrInvalidInput))
		return
	}
	if err := h.svc.DeleteDate(r.Context(), userID, id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
