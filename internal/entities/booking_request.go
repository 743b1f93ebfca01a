package entities

type BookingRequest struct {
	UserName        string `json:"user_name"`
	UserEmail       string `json:"user_email"`
	UserPhone       string `json:"user_phone"`
	Level           string `json:"level"`
	Goals           string `json:"goals"`
	ServiceType     string `json:"service_type"`
	ServiceName     string `json:"service_name"`
	Price           int    `json:"price"`
	DurationMinutes int    `json:"duration_minutes"`
	Date            string `json:"date"`      // home-timezone date, YYYY-MM-DD
	HomeTime        string `json:"home_time"` // home-timezone start, HH:MM
	Timezone        string `json:"timezone"`  // student's zone, for display only
	Language        string `json:"language"`
	PaymentIntentID string `json:"payment_intent_id"`
}
