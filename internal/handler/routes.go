package handler

import (
	"net/http"

	"github.com/Dan9191/matrix-service/internal/config"
	"github.com/Dan9191/matrix-service/internal/middleware"
	"github.com/gorilla/mux"
)

// NewRouter wires every route. webhook may be nil when the bot is disabled.
func NewRouter(h *Handler, cfg *config.Config, webhook http.HandlerFunc) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Logging(h.log))

	// Public routes
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/auth/telegram", h.TelegramAuth).Methods("POST")
	r.HandleFunc("/chart", h.Chart).Methods("GET")
	r.HandleFunc("/money-code", h.MoneyCode).Methods("GET")
	r.HandleFunc("/forecast/year", h.YearForecast).Methods("GET")
	r.HandleFunc("/forecast/month", h.MonthForecast).Methods("GET")
	r.HandleFunc("/forecast/current", h.CurrentPeriod).Methods("GET")
	if webhook != nil {
		r.HandleFunc("/telegram/webhook", webhook).Methods("POST")
	}

	// Protected routes
	authRouter := r.PathPrefix("/dates").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("", h.SaveDate).Methods("POST")
	authRouter.HandleFunc("", h.ListDates).Methods("GET")
	authRouter.HandleFunc("/{id:[0-9]+}", h.DeleteDate).Methods("DELETE")

	return r
}
