package db

import "time"

type Booking struct {
	ID              int
	Code            string
	UserName        string
	UserEmail       string
	UserPhone       string
	Level           string
	Goals           string
	ServiceType     string
	ServiceName     string
	Price           int
	DurationMinutes int
	Timezone        string
	Language        string
	Status          string
	PaymentIntentID string
	EventID         string
	HangoutLink     string
	StartTime       time.Time
	EndTime         time.Time
	ReminderSent    bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
