package entities

type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Level string `json:"level"`
	Goals string `json:"goals"`
}

type PaymentIntentRequest struct {
	Amount       float64      `json:"amount"` // euros
	Currency     string       `json:"currency"`
	ServiceType  string       `json:"serviceType"`
	CustomerInfo CustomerInfo `json:"customerInfo"`
}

type PaymentIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}
