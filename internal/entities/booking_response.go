package entities

import "time"

type BookingResponse struct {
	Code            string    `json:"code"`
	UserName        string    `json:"user_name"`
	UserEmail       string    `json:"user_email"`
	UserPhone       string    `json:"user_phone,omitempty"`
	Level           string    `json:"level"`
	Goals           string    `json:"goals"`
	ServiceType     string    `json:"service_type"`
	ServiceName     string    `json:"service_name"`
	Price           int       `json:"price"`
	DurationMinutes int       `json:"duration_minutes"`
	Timezone        string    `json:"timezone"`
	Language        string    `json:"language"`
	Status          string    `json:"status"`
	EventID         string    `json:"event_id,omitempty"`
	HangoutLink     string    `json:"hangout_link,omitempty"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type BookingsList struct {
	Total    int64             `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
	Bookings []BookingResponse `json:"bookings"`
}
