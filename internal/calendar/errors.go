package calendar

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"google.golang.org/api/googleapi"

	"tutoria/internal/availability"
)

// ErrNotConfigured is returned when the service-account credentials are
// missing. Callers decide whether that is fatal (event creation) or a
// degraded mode (availability).
var ErrNotConfigured = errors.New("calendar credentials not configured")

// NotConfigured stands in for the real client when no credentials were
// supplied. Every call fails with ErrNotConfigured so the caller hits its
// explicit unavailable branch instead of silently seeing an empty calendar.
type NotConfigured struct{}

func (NotConfigured) BusyIntervals(context.Context, time.Time, time.Time, string) ([]availability.BusyInterval, error) {
	return nil, ErrNotConfigured
}

func (NotConfigured) CreateEvent(context.Context, EventRequest) (*CreatedEvent, error) {
	return nil, ErrNotConfigured
}

// StatusForEventError maps a calendar error to the HTTP status and
// user-safe message for the event-creation endpoint. Raw API detail is
// never surfaced to the client.
func StatusForEventError(err error) (int, string) {
	if errors.Is(err, ErrNotConfigured) {
		return http.StatusInternalServerError, "Calendar service not available"
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusForbidden:
			return http.StatusInternalServerError, "Calendar service permissions issue. Please contact support."
		case http.StatusNotFound:
			return http.StatusInternalServerError, "Calendar not found. Please contact support."
		case http.StatusConflict:
			return http.StatusConflict, "Time slot conflict. Please choose a different time."
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return http.StatusServiceUnavailable, "Calendar service is temporarily unavailable. Please try again in a few minutes."
	}

	return http.StatusInternalServerError, "Failed to create calendar event. Please try again later."
}
