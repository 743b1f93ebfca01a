package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"tutoria/internal/calendar"
	"tutoria/internal/service"
)

type EventHandler struct {
	Events       service.EventCreator
	HomeTimezone string
}

func NewEventHandler(events service.EventCreator, homeTimezone string) *EventHandler {
	return &EventHandler{Events: events, HomeTimezone: homeTimezone}
}

func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, CreateEventResponse{Error: "Invalid request body"})
		return
	}

	if msg := validateEventRequest(&req); msg != "" {
		writeJSON(w, http.StatusBadRequest, CreateEventResponse{Error: msg})
		return
	}
	if req.Timezone == "" {
		req.Timezone = h.HomeTimezone
	}

	created, err := h.Events.CreateEvent(r.Context(), calendar.EventRequest{
		Title:         req.Title,
		Description:   req.Description,
		Start:         req.StartDateTime,
		End:           req.EndDateTime,
		AttendeeEmail: req.AttendeeEmail,
		AttendeeName:  req.AttendeeName,
		Timezone:      req.Timezone,
	})
	if err != nil {
		log.Printf("Error creating calendar event: %v", err)
		status, msg := calendar.StatusForEventError(err)
		writeJSON(w, status, CreateEventResponse{Error: msg})
		return
	}

	writeJSON(w, http.StatusOK, CreateEventResponse{
		Success:     true,
		EventID:     created.EventID,
		HangoutLink: created.HangoutLink,
	})
}

func validateEventRequest(req *CreateEventRequest) string {
	if strings.TrimSpace(req.Title) == "" {
		return "Valid title is required"
	}
	if req.StartDateTime == "" || req.EndDateTime == "" {
		return "Start and end times are required"
	}
	if _, err := time.Parse(time.RFC3339, req.StartDateTime); err != nil {
		return "Start time must be an ISO-8601 datetime"
	}
	if _, err := time.Parse(time.RFC3339, req.EndDateTime); err != nil {
		return "End time must be an ISO-8601 datetime"
	}
	if !strings.Contains(req.AttendeeEmail, "@") {
		return "Valid email address is required"
	}
	if strings.TrimSpace(req.AttendeeName) == "" {
		return "Attendee name is required"
	}
	return ""
}
