package api

import (
	"context"
	"fmt"
	"net/http"

	"barberpro/internal/config"
	"barberpro/internal/domain"
	"barberpro/internal/service"
	"barberpro/internal/session"
	"barberpro/internal/wizard"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server exposes the booking, store and admin HTTP API.
type Server struct {
	cfg          config.ServerConfig
	server       *http.Server
	logger       *zerolog.Logger
	auth         *session.Manager
	limiter      *rateLimiter
	wizard       *wizard.Service
	appointments domain.AppointmentRepository
	services     domain.ServiceCatalog
	products     domain.ProductCatalog
	staff        domain.StaffRoster
	admin        *service.AdminService
	finance      *service.FinanceService
	loyalty      *service.LoyaltyService
	checkout     *service.CheckoutService
}

type Deps struct {
	Auth         *session.Manager
	Wizard       *wizard.Service
	Appointments domain.AppointmentRepository
	Services     domain.ServiceCatalog
	Products     domain.ProductCatalog
	Staff        domain.StaffRoster
	Admin        *service.AdminService
	Finance      *service.FinanceService
	Loyalty      *service.LoyaltyService
	Checkout     *service.CheckoutService
}

func NewServer(cfg config.ServerConfig, rlCfg config.RateLimitConfig, deps Deps, logger *zerolog.Logger) *Server {
	s := &Server{
		cfg:          cfg,
		logger:       logger,
		auth:         deps.Auth,
		limiter:      newRateLimiter(rlCfg),
		wizard:       deps.Wizard,
		appointments: deps.Appointments,
		services:     deps.Services,
		products:     deps.Products,
		staff:        deps.Staff,
		admin:        deps.Admin,
		finance:      deps.Finance,
		loyalty:      deps.Loyalty,
		checkout:     deps.Checkout,
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestIDMiddleware, s.loggingMiddleware, s.metricsMiddleware, s.rateLimitMiddleware)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	// Everything below requires a session token.
	authed := api.PathPrefix("").Subrouter()
	authed.Use(s.requireAuth)

	authed.HandleFunc("/booking/sessions", s.handleStartSession).Methods(http.MethodPost)
	authed.HandleFunc("/booking/sessions/{id}", s.handleGetSession).Methods(http.MethodGet)
	authed.HandleFunc("/booking/sessions/{id}", s.handleAbandonSession).Methods(http.MethodDelete)
	authed.HandleFunc("/booking/sessions/{id}/barber", s.handleSelectBarber).Methods(http.MethodPost)
	authed.HandleFunc("/booking/sessions/{id}/date", s.handleSelectDay).Methods(http.MethodPost)
	authed.HandleFunc("/booking/sessions/{id}/time", s.handleSelectTime).Methods(http.MethodPost)
	authed.HandleFunc("/booking/sessions/{id}/service", s.handleSelectService).Methods(http.MethodPost)
	authed.HandleFunc("/booking/sessions/{id}/confirm", s.handleConfirm).Methods(http.MethodPost)
	authed.HandleFunc("/booking/barbers", s.handleListBarbers).Methods(http.MethodGet)
	authed.HandleFunc("/booking/services", s.handleListBookableServices).Methods(http.MethodGet)
	authed.HandleFunc("/booking/slots", s.handleListSlots).Methods(http.MethodGet)
	authed.HandleFunc("/booking/days", s.handleListDays).Methods(http.MethodGet)

	authed.HandleFunc("/appointments", s.handleListAppointments).Methods(http.MethodGet)
	authed.HandleFunc("/loyalty", s.handleLoyalty).Methods(http.MethodGet)
	authed.HandleFunc("/loyalty/rewards", s.handleLoyaltyRewards).Methods(http.MethodGet)

	authed.HandleFunc("/products", s.handleListProducts).Methods(http.MethodGet)
	authed.HandleFunc("/cart", s.handleGetCart).Methods(http.MethodGet)
	authed.HandleFunc("/cart", s.handleSetCart).Methods(http.MethodPost)
	authed.HandleFunc("/checkout", s.handleCheckout).Methods(http.MethodPost)

	admin := authed.PathPrefix("").Subrouter()
	admin.Use(s.requireAdmin)
	admin.HandleFunc("/admin/services", s.handleAdminListServices).Methods(http.MethodGet)
	admin.HandleFunc("/admin/services", s.handleAdminCreateService).Methods(http.MethodPost)
	admin.HandleFunc("/admin/services/{id}", s.handleAdminUpdateService).Methods(http.MethodPut)
	admin.HandleFunc("/admin/services/{id}", s.handleAdminDeleteService).Methods(http.MethodDelete)
	admin.HandleFunc("/admin/products", s.handleAdminListProducts).Methods(http.MethodGet)
	admin.HandleFunc("/admin/products", s.handleAdminCreateProduct).Methods(http.MethodPost)
	admin.HandleFunc("/admin/products/{id}", s.handleAdminUpdateProduct).Methods(http.MethodPut)
	admin.HandleFunc("/admin/products/{id}", s.handleAdminDeleteProduct).Methods(http.MethodDelete)
	admin.HandleFunc("/admin/staff", s.handleAdminListStaff).Methods(http.MethodGet)
	admin.HandleFunc("/admin/staff", s.handleAdminCreateBarber).Methods(http.MethodPost)
	admin.HandleFunc("/admin/staff/{id}", s.handleAdminUpdateBarber).Methods(http.MethodPut)
	admin.HandleFunc("/admin/staff/{id}", s.handleAdminDeleteBarber).Methods(http.MethodDelete)
	admin.HandleFunc("/admin/finance", s.handleFinance).Methods(http.MethodGet)

	return r
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
