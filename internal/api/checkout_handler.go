package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"hospedaria/internal/entities"
	"hospedaria/internal/errs"
	"hospedaria/internal/service"

	"github.com/gorilla/mux"
)

type CheckoutHandler struct {
	Checkout           *service.CheckoutService
	ReservationService *service.ReservationService
}

func NewCheckoutHandler(checkout *service.CheckoutService, reservations *service.ReservationService) *CheckoutHandler {
	return &CheckoutHandler{Checkout: checkout, ReservationService: reservations}
}

// Submit recebe o formulário do checkout e devolve sempre um resultado
// estruturado: "ok", "booking_failed" ou "payment_failed". O último carrega
// o booking_id para que o app ofereça "tentar o pagamento de novo".
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	checkIn, err := time.Parse("2006-01-02", req.CheckInDate)
	if err != nil && req.CheckInDate != "" {
		http.Error(w, "check_in_date deve estar no formato yyyy-MM-dd", http.StatusBadRequest)
		return
	}

	result, err := h.Checkout.Submit(entities.CheckoutRequest{
		UserID:        req.UserID,
		PropertyID:    req.PropertyID,
		PropertyTitle: req.PropertyTitle,
		CheckInDate:   checkIn,
		Nights:        req.Nights,
		PricePerNight: req.PricePerNight,
		Guest: entities.Guest{
			Name:  req.Guest.Name,
			Email: req.Guest.Email,
			Phone: req.Guest.Phone,
			CPF:   req.Guest.CPF,
		},
	})
	if err != nil {
		writeCheckoutError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// RetryPayment gera um novo PIX para uma reserva pendente já gravada.
func (h *CheckoutHandler) RetryPayment(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["id"]

	result, err := h.Checkout.RetryPayment(bookingID)
	if err != nil {
		writeCheckoutError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *CheckoutHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	res, err := h.ReservationService.GetReservationByID(id)
	if err != nil {
		http.Error(w, "Reservation not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func writeCheckoutError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	var httpErr *errs.HTTPError
	switch {
	case errors.As(err, &validationErr):
		httpErr = errs.NewHTTPError(http.StatusUnprocessableEntity, validationErr.Message)
	case errors.Is(err, service.ErrSubmissionInFlight):
		httpErr = errs.NewHTTPError(http.StatusConflict, err.Error())
	default:
		httpErr = errs.NewHTTPError(http.StatusInternalServerError, "Não foi possível processar o checkout")
	}
	http.Error(w, httpErr.Message, httpErr.Code)
}
