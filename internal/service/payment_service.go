package service

import (
	"errors"
	"log"
	"math"
	"net"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"

	"tutoria/internal/entities"
)

type PaymentService struct{}

func NewPaymentService(secretKey string) *PaymentService {
	stripe.Key = secretKey
	return &PaymentService{}
}

// CreateClassPaymentIntent creates a Stripe PaymentIntent for one class.
// The customer details travel in metadata so the dashboard shows who the
// payment belongs to.
func (s *PaymentService) CreateClassPaymentIntent(req entities.PaymentIntentRequest) (*entities.PaymentIntentResponse, error) {
	goals := req.CustomerInfo.Goals
	if len(goals) > 500 {
		// Stripe metadata values cap out at 500 characters.
		goals = goals[:500]
	}

	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(int64(math.Round(req.Amount * 100))),
		Currency:     stripe.String(strings.ToLower(req.Currency)),
		Description:  stripe.String("Spanish Class: " + req.ServiceType),
		ReceiptEmail: stripe.String(req.CustomerInfo.Email),
	}
	params.AddMetadata("serviceType", req.ServiceType)
	params.AddMetadata("customerName", req.CustomerInfo.Name)
	params.AddMetadata("customerEmail", req.CustomerInfo.Email)
	params.AddMetadata("customerLevel", req.CustomerInfo.Level)
	params.AddMetadata("customerGoals", goals)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}
	log.Printf("Payment intent created: %s", pi.ID)

	return &entities.PaymentIntentResponse{
		ClientSecret:    pi.ClientSecret,
		PaymentIntentID: pi.ID,
	}, nil
}

// StatusForPaymentError maps a Stripe failure to a user-safe status and
// message. Internal Stripe detail is logged upstream, never returned.
func StatusForPaymentError(err error) (int, string) {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		switch stripeErr.Type {
		case stripe.ErrorTypeCard:
			return http.StatusBadRequest, "There was an issue with your card. Please check your payment details."
		case stripe.ErrorTypeInvalidRequest:
			return http.StatusBadRequest, "Invalid payment request. Please refresh and try again."
		}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return http.StatusServiceUnavailable, "Payment service is temporarily unavailable. Please try again in a few minutes."
	}
	return http.StatusInternalServerError, "Payment processing is temporarily unavailable. Please try again later."
}
