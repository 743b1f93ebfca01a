package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"tutoria/internal/entities"
	errs "tutoria/internal/errors"
	"tutoria/internal/service"
)

type BookingHandler struct {
	Service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	booking, err := h.Service.CreateBooking(r.Context(), &req)
	if err != nil {
		status, msg := errs.StatusOf(err)
		http.Error(w, msg, status)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	email := r.URL.Query().Get("email")
	if email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	booking, err := h.Service.GetBookingByCode(code, email)
	if err != nil {
		status, msg := errs.StatusOf(err)
		http.Error(w, msg, status)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}
