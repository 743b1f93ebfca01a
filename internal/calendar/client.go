package calendar

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"tutoria/internal/availability"
)

// Config carries the service-account credentials and the calendars that
// block availability. BusyCalendarIDs usually holds the primary teaching
// calendar plus any third-party booking calendar.
type Config struct {
	ServiceAccountEmail string
	PrivateKey          string
	ImpersonateEmail    string
	PrimaryCalendarID   string
	BusyCalendarIDs     []string
}

// Client wraps the Google Calendar API for freebusy queries and event
// creation. Events are always written to the primary calendar.
type Client struct {
	svc       *gcal.Service
	primaryID string
	busyIDs   []string
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ServiceAccountEmail == "" || cfg.PrivateKey == "" {
		return nil, ErrNotConfigured
	}
	if cfg.PrimaryCalendarID == "" {
		return nil, ErrNotConfigured
	}

	// Keys arrive from the environment with literal \n sequences.
	key := strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")

	auth := &jwt.Config{
		Email:      cfg.ServiceAccountEmail,
		PrivateKey: []byte(key),
		Scopes:     []string{gcal.CalendarScope},
		TokenURL:   google.JWTTokenURL,
		Subject:    cfg.ImpersonateEmail,
	}
	svc, err := gcal.NewService(ctx, option.WithHTTPClient(auth.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("creating calendar service: %w", err)
	}

	busyIDs := cfg.BusyCalendarIDs
	if len(busyIDs) == 0 {
		busyIDs = []string{cfg.PrimaryCalendarID}
	}
	return &Client{svc: svc, primaryID: cfg.PrimaryCalendarID, busyIDs: busyIDs}, nil
}

// BusyIntervals queries freebusy over [start, end) in the given reference
// timezone and flattens the busy ranges of every configured calendar into
// one list. No merging of adjacent or overlapping ranges is done; the
// availability engine only needs overlap tests.
func (c *Client) BusyIntervals(ctx context.Context, start, end time.Time, timezone string) ([]availability.BusyInterval, error) {
	items := make([]*gcal.FreeBusyRequestItem, 0, len(c.busyIDs))
	for _, id := range c.busyIDs {
		items = append(items, &gcal.FreeBusyRequestItem{Id: id})
	}

	resp, err := c.svc.Freebusy.Query(&gcal.FreeBusyRequest{
		TimeMin:  start.Format(time.RFC3339),
		TimeMax:  end.Format(time.RFC3339),
		TimeZone: timezone,
		Items:    items,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query: %w", err)
	}

	var busy []availability.BusyInterval
	for _, id := range c.busyIDs {
		cal, ok := resp.Calendars[id]
		if !ok {
			continue
		}
		for _, p := range cal.Busy {
			interval, err := parsePeriod(p)
			if err != nil {
				log.Printf("Skipping unparsable busy period from %s: %v", id, err)
				continue
			}
			busy = append(busy, interval)
		}
	}
	return busy, nil
}

func parsePeriod(p *gcal.TimePeriod) (availability.BusyInterval, error) {
	start, err := time.Parse(time.RFC3339, p.Start)
	if err != nil {
		return availability.BusyInterval{}, fmt.Errorf("bad start %q: %w", p.Start, err)
	}
	end, err := time.Parse(time.RFC3339, p.End)
	if err != nil {
		return availability.BusyInterval{}, fmt.Errorf("bad end %q: %w", p.End, err)
	}
	return availability.BusyInterval{Start: start, End: end}, nil
}

// EventRequest describes a class booking to be written to the calendar.
// Start and End are ISO-8601 datetimes interpreted in Timezone.
type EventRequest struct {
	Title         string
	Description   string
	Start         string
	End           string
	AttendeeEmail string
	AttendeeName  string
	Timezone      string
}

// CreatedEvent is the subset of the inserted event the booking flow needs.
type CreatedEvent struct {
	EventID     string
	HangoutLink string
}

// CreateEvent inserts the event on the primary calendar with a Meet link,
// an email reminder a day ahead and a popup 30 minutes ahead, and invites
// the student.
func (c *Client) CreateEvent(ctx context.Context, req EventRequest) (*CreatedEvent, error) {
	event := &gcal.Event{
		Summary:     req.Title,
		Description: req.Description,
		Start:       &gcal.EventDateTime{DateTime: req.Start, TimeZone: req.Timezone},
		End:         &gcal.EventDateTime{DateTime: req.End, TimeZone: req.Timezone},
		Attendees: []*gcal.EventAttendee{
			{Email: req.AttendeeEmail, DisplayName: req.AttendeeName},
		},
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 30},
			},
			ForceSendFields: []string{"UseDefault"},
		},
		ConferenceData: &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				RequestId:             fmt.Sprintf("meet-%d", time.Now().UnixNano()),
				ConferenceSolutionKey: &gcal.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
	}

	created, err := c.svc.Events.Insert(c.primaryID, event).
		ConferenceDataVersion(1).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("inserting event: %w", err)
	}
	return &CreatedEvent{EventID: created.Id, HangoutLink: created.HangoutLink}, nil
}
