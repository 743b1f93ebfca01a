package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"google.golang.org/api/googleapi"

	"tutoria/internal/calendar"
	"tutoria/internal/entities"
	errs "tutoria/internal/errors"
)

type stubEventCreator struct {
	created *calendar.CreatedEvent
	err     error
	gotReq  calendar.EventRequest
	calls   int
}

func (s *stubEventCreator) CreateEvent(_ context.Context, req calendar.EventRequest) (*calendar.CreatedEvent, error) {
	s.calls++
	s.gotReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.created, nil
}

func newTestBookingService(events EventCreator) *BookingService {
	home, err := time.LoadLocation("Atlantic/Canary")
	if err != nil {
		panic(err)
	}
	return NewBookingService(nil, events, nil, home)
}

func validRequest() *entities.BookingRequest {
	future := time.Now().AddDate(0, 0, 7)
	return &entities.BookingRequest{
		UserName:    "Ana García",
		UserEmail:   "ana@example.com",
		ServiceType: "trial-class",
		ServiceName: "Trial Class",
		Date:        future.Format("2006-01-02"),
		HomeTime:    "15:00",
		Timezone:    "Europe/Madrid",
	}
}

func TestCreateBooking_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*entities.BookingRequest)
	}{
		{"missing name", func(r *entities.BookingRequest) { r.UserName = "  " }},
		{"bad email", func(r *entities.BookingRequest) { r.UserEmail = "not-an-email" }},
		{"missing service type", func(r *entities.BookingRequest) { r.ServiceType = "" }},
		{"missing date", func(r *entities.BookingRequest) { r.Date = "" }},
		{"missing time", func(r *entities.BookingRequest) { r.HomeTime = "" }},
		{"unparsable date", func(r *entities.BookingRequest) { r.Date = "07/01/2026" }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			events := &stubEventCreator{}
			svc := newTestBookingService(events)
			req := validRequest()
			c.mutate(req)

			_, err := svc.CreateBooking(context.Background(), req)
			if err == nil {
				t.Fatal("expected error")
			}
			if status, _ := errs.StatusOf(err); status != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
			if events.calls != 0 {
				t.Error("calendar should not be called for invalid request")
			}
		})
	}
}

func TestCreateBooking_RejectsPast(t *testing.T) {
	events := &stubEventCreator{}
	svc := newTestBookingService(events)
	req := validRequest()
	req.Date = time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	_, err := svc.CreateBooking(context.Background(), req)
	if err == nil {
		t.Fatal("expected error for past class")
	}
	if status, _ := errs.StatusOf(err); status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
	if events.calls != 0 {
		t.Error("calendar should not be called for past class")
	}
}

func TestCreateBooking_CalendarFailureStopsBooking(t *testing.T) {
	events := &stubEventCreator{err: calendar.ErrNotConfigured}
	svc := newTestBookingService(events)

	_, err := svc.CreateBooking(context.Background(), validRequest())
	if err == nil {
		t.Fatal("expected error when the calendar is unavailable")
	}
	if status, _ := errs.StatusOf(err); status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", status)
	}
}

func TestCreateBooking_CalendarConflictSurfacesAsConflict(t *testing.T) {
	events := &stubEventCreator{err: &googleapi.Error{Code: http.StatusConflict}}
	svc := newTestBookingService(events)

	_, err := svc.CreateBooking(context.Background(), validRequest())
	if err == nil {
		t.Fatal("expected error for a double-booked slot")
	}
	status, msg := errs.StatusOf(err)
	if status != http.StatusConflict {
		t.Errorf("status = %d, want 409", status)
	}
	if strings.Contains(msg, "googleapi") {
		t.Errorf("message leaks API detail: %q", msg)
	}
}

func TestCreateBooking_EventRequestShape(t *testing.T) {
	events := &stubEventCreator{err: errors.New("stop before persistence")}
	svc := newTestBookingService(events)
	req := validRequest()
	req.Level = "B1"
	req.Goals = "Conversational fluency"

	_, _ = svc.CreateBooking(context.Background(), req)
	if events.calls != 1 {
		t.Fatalf("calendar calls = %d, want 1", events.calls)
	}
	got := events.gotReq
	if got.AttendeeEmail != req.UserEmail {
		t.Errorf("attendee email = %q, want %q", got.AttendeeEmail, req.UserEmail)
	}
	if got.Timezone != "Atlantic/Canary" {
		t.Errorf("event timezone = %q, want home timezone", got.Timezone)
	}
	start, err := time.Parse(time.RFC3339, got.Start)
	if err != nil {
		t.Fatalf("start is not RFC3339: %v", err)
	}
	end, err := time.Parse(time.RFC3339, got.End)
	if err != nil {
		t.Fatalf("end is not RFC3339: %v", err)
	}
	if end.Sub(start) != 30*time.Minute {
		t.Errorf("trial class duration = %v, want 30m", end.Sub(start))
	}
}

func TestStatusTranslation(t *testing.T) {
	cases := []struct {
		status, lang, want string
	}{
		{"confirmed", "es", "confirmada"},
		{"completed", "es", "finalizada"},
		{"cancelled", "es", "cancelada"},
		{"upcoming", "es", "próxima"},
		{"confirmed", "en", "confirmed"},
		{"mystery", "es", "mystery"},
	}
	for _, c := range cases {
		if got := StatusTranslation(c.status, c.lang); got != c.want {
			t.Errorf("StatusTranslation(%q, %q) = %q, want %q", c.status, c.lang, got, c.want)
		}
	}
}
