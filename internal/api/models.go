package api

import (
	"encoding/json"
	"net/http"

	"tutoria/internal/availability"
)

// Availability. Field names follow the booking frontend's contract.
type AvailabilityRequest struct {
	Days     int    `json:"days"`
	Timezone string `json:"timezone"`
}

type AvailabilityResponse struct {
	Availability map[string]availability.Day `json:"availability"`
	Timezone     string                      `json:"timezone"`
	HomeTimezone string                      `json:"homeTimezone"`
	Warning      string                      `json:"warning,omitempty"`
}

// Calendar event creation.
type CreateEventRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	StartDateTime string `json:"startDateTime"`
	EndDateTime   string `json:"endDateTime"`
	AttendeeEmail string `json:"attendeeEmail"`
	AttendeeName  string `json:"attendeeName"`
	Timezone      string `json:"timezone"`
}

type CreateEventResponse struct {
	Success     bool   `json:"success"`
	EventID     string `json:"eventId,omitempty"`
	HangoutLink string `json:"hangoutLink,omitempty"`
	Error       string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
