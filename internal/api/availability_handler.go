package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"tutoria/internal/availability"
	"tutoria/internal/calendar"
)

const calendarWarning = "Calendar service temporarily unavailable - showing basic availability"

// BusySource yields externally booked intervals over [start, end) queried
// in the given reference timezone.
type BusySource interface {
	BusyIntervals(ctx context.Context, start, end time.Time, timezone string) ([]availability.BusyInterval, error)
}

type AvailabilityHandler struct {
	Engine *availability.Engine
	Busy   BusySource
	Now    func() time.Time
}

func NewAvailabilityHandler(engine *availability.Engine, busy BusySource) *AvailabilityHandler {
	return &AvailabilityHandler{Engine: engine, Busy: busy, Now: time.Now}
}

func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req AvailabilityRequest
	// An empty body falls back to the defaults below.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	days := req.Days
	if days == 0 {
		days = 14
	}
	if days < 1 {
		days = 1
	}
	if days > 60 {
		days = 60
	}

	homeTimezone := h.Engine.HomeTimezone()
	timezone := req.Timezone
	if timezone == "" {
		timezone = homeTimezone
	}

	now := h.Now()
	windowEnd := now.AddDate(0, 0, days)

	warning := ""
	busy, err := h.Busy.BusyIntervals(r.Context(), now, windowEnd, homeTimezone)
	if err != nil {
		if errors.Is(err, calendar.ErrNotConfigured) {
			http.Error(w, "Calendar auth failed", http.StatusInternalServerError)
			return
		}
		// Keep the booking flow usable without real conflict data.
		log.Printf("Error fetching busy intervals, degrading to open availability: %v", err)
		busy = nil
		warning = calendarWarning
	}

	result, err := h.Engine.Compute(days, timezone, busy, now)
	if err != nil {
		http.Error(w, "Invalid timezone", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, AvailabilityResponse{
		Availability: result,
		Timezone:     timezone,
		HomeTimezone: homeTimezone,
		Warning:      warning,
	})
}
