package api

import (
	"errors"
	"net/http"

	"barberpro/internal/models"
	"barberpro/internal/service"
	"barberpro/internal/session"
	"barberpro/internal/store"
	"barberpro/internal/wizard"

	"github.com/gorilla/mux"
)

// --- auth ---

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, token, err := s.auth.Login(body.Email, body.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user, "token": token})
}

// --- booking wizard ---

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	state, err := s.wizard.Start(r.Context(), *user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to start session")
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	state, err := s.wizard.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleAbandonSession(w http.ResponseWriter, r *http.Request) {
	if err := s.wizard.Abandon(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to abandon session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelectBarber(w http.ResponseWriter, r *http.Request) {
	var body struct {
		BarberID string `json:"barberId"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	state, err := s.wizard.SelectBarber(r.Context(), mux.Vars(r)["id"], body.BarberID)
	if err != nil {
		s.writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleSelectDay(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Day int `json:"day"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	state, err := s.wizard.SelectDay(r.Context(), mux.Vars(r)["id"], body.Day)
	if err != nil {
		s.writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleSelectTime(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Time string `json:"time"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	state, err := s.wizard.SelectTime(r.Context(), mux.Vars(r)["id"], body.Time)
	if err != nil {
		s.writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleSelectService(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ServiceID string `json:"serviceId"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	state, err := s.wizard.SelectService(r.Context(), mux.Vars(r)["id"], body.ServiceID)
	if err != nil {
		s.writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	apt, err := s.wizard.Confirm(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, apt)
}

func (s *Server) handleListBarbers(w http.ResponseWriter, r *http.Request) {
	barbers, err := s.wizard.Barbers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list barbers")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"barbers": barbers})
}

func (s *Server) handleListBookableServices(w http.ResponseWriter, r *http.Request) {
	services, err := s.wizard.Services(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list services")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"services": services})
}

func (s *Server) handleListSlots(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"slots": models.TimeSlots})
}

func (s *Server) handleListDays(w http.ResponseWriter, _ *http.Request) {
	days := make([]int, 0, models.DaysInMonth)
	for day := 1; day <= models.DaysInMonth; day++ {
		days = append(days, day)
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": days})
}

func (s *Server) writeWizardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wizard.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, wizard.ErrWrongStep),
		errors.Is(err, wizard.ErrAlreadyConfirmed):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, wizard.ErrInvalidDay),
		errors.Is(err, wizard.ErrInvalidTimeSlot),
		errors.Is(err, wizard.ErrSelectionMissing):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// --- appointments ---

func (s *Server) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	clientID := r.URL.Query().Get("client_id")
	// Clients can only see their own history.
	if user.Role != models.RoleAdmin {
		clientID = user.ID
	}

	var (
		apts []models.Appointment
		err  error
	)
	if clientID == "" {
		apts, err = s.appointments.LoadAll(r.Context())
	} else {
		apts, err = s.appointments.FilterByClient(r.Context(), clientID)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load appointments")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"appointments": apts})
}

// --- loyalty ---

func (s *Server) handleLoyalty(w http.ResponseWriter, r *http.Request) {
	balance, err := s.loyalty.Balance(r.Context(), userFrom(r).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load loyalty balance")
		return
	}
	writeJSON(w, http.StatusOK, balance)
}

func (s *Server) handleLoyaltyRewards(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"rewards": s.loyalty.Rewards()})
}

// --- store / checkout ---

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.products.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	items, err := s.checkout.Cart(r.Context(), userFrom(r).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleSetCart(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Items []service.CartItem `json:"items"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.checkout.SetCart(r.Context(), userFrom(r).ID, body.Items); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCartQuantity),
			errors.Is(err, service.ErrUnknownProductInCart):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to save cart")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": body.Items})
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PaymentMethod string `json:"paymentMethod"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	order, err := s.checkout.Process(r.Context(), userFrom(r).ID, body.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart),
			errors.Is(err, service.ErrUnknownPaymentMethod),
			errors.Is(err, service.ErrUnknownProductInCart):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "checkout failed")
		}
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// --- admin ---

func (s *Server) handleAdminListServices(w http.ResponseWriter, r *http.Request) {
	services, err := s.services.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list services")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"services": services})
}

func (s *Server) handleAdminCreateService(w http.ResponseWriter, r *http.Request) {
	var form service.ServiceForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	svc, err := s.admin.CreateService(r.Context(), form)
	if err != nil {
		s.writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, svc)
}

func (s *Server) handleAdminUpdateService(w http.ResponseWriter, r *http.Request) {
	var form service.ServiceForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	svc, err := s.admin.UpdateService(r.Context(), mux.Vars(r)["id"], form)
	if err != nil {
		s.writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

func (s *Server) handleAdminDeleteService(w http.ResponseWriter, r *http.Request) {
	if err := s.admin.DeleteService(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeAdminError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAdminListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.products.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (s *Server) handleAdminCreateProduct(w http.ResponseWriter, r *http.Request) {
	var form service.ProductForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	p, err := s.admin.CreateProduct(r.Context(), form)
	if err != nil {
		s.writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleAdminUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var form service.ProductForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	p, err := s.admin.UpdateProduct(r.Context(), mux.Vars(r)["id"], form)
	if err != nil {
		s.writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleAdminDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.admin.DeleteProduct(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeAdminError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAdminListStaff(w http.ResponseWriter, r *http.Request) {
	barbers, err := s.staff.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list staff")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"staff": barbers})
}

func (s *Server) handleAdminCreateBarber(w http.ResponseWriter, r *http.Request) {
	var form service.BarberForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	b, err := s.admin.CreateBarber(r.Context(), form)
	if err != nil {
		s.writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleAdminUpdateBarber(w http.ResponseWriter, r *http.Request) {
	var form service.BarberForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	b, err := s.admin.UpdateBarber(r.Context(), mux.Vars(r)["id"], form)
	if err != nil {
		s.writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleAdminDeleteBarber(w http.ResponseWriter, r *http.Request) {
	if err := s.admin.DeleteBarber(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeAdminError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFinance(w http.ResponseWriter, r *http.Request) {
	stats, err := s.finance.Compute(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) writeAdminError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidForm):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
