package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"tutoria/internal/entities"
	"tutoria/internal/service"
)

type PaymentHandler struct {
	Service *service.PaymentService
}

func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

func (h *PaymentHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req entities.PaymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	if msg := validatePaymentRequest(&req); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	resp, err := h.Service.CreateClassPaymentIntent(req)
	if err != nil {
		log.Printf("Error creating payment intent: %v", err)
		status, msg := service.StatusForPaymentError(err)
		writeJSON(w, status, map[string]string{"error": msg})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func validatePaymentRequest(req *entities.PaymentIntentRequest) string {
	if req.Amount <= 0 || req.Amount > 10000 {
		return "Invalid amount"
	}
	if strings.ToLower(req.Currency) != "eur" {
		return "Invalid currency"
	}
	if strings.TrimSpace(req.ServiceType) == "" {
		return "Invalid service type"
	}
	c := req.CustomerInfo
	if c.Name == "" || c.Email == "" || c.Level == "" || c.Goals == "" {
		return "Missing customer information"
	}
	return ""
}
