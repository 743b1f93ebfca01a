package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"tutoria/internal/calendar"
	"tutoria/internal/db"
	"tutoria/internal/entities"
	errs "tutoria/internal/errors"
	"tutoria/internal/repository"
	"tutoria/internal/utils"
)

const (
	statusConfirmed = "confirmed"
	statusCompleted = "completed"
)

// EventCreator writes a class to the tutor's calendar.
type EventCreator interface {
	CreateEvent(ctx context.Context, req calendar.EventRequest) (*calendar.CreatedEvent, error)
}

type BookingService struct {
	Repo   *repository.BookingRepository
	Events EventCreator
	Sender *SenderService
	home   *time.Location
}

func NewBookingService(repo *repository.BookingRepository, events EventCreator, sender *SenderService, home *time.Location) *BookingService {
	return &BookingService{Repo: repo, Events: events, Sender: sender, home: home}
}

// CreateBooking reconstructs the class instant from the home date and home
// time (the home timezone is authoritative for when the class actually
// happens), writes the calendar event, persists the booking and notifies
// the student. Payment has already been captured by the time this runs.
func (s *BookingService) CreateBooking(ctx context.Context, req *entities.BookingRequest) (*entities.BookingResponse, error) {
	if err := validateBookingRequest(req); err != nil {
		return nil, err
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.HomeTime, s.home)
	if err != nil {
		return nil, errs.ErrBadRequest(fmt.Sprintf("invalid date or time: %s %s", req.Date, req.HomeTime))
	}
	if start.Before(time.Now()) {
		return nil, errs.ErrBadRequest("cannot book a class in the past")
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = utils.DurationForService(req.ServiceType)
	}
	end := start.Add(time.Duration(duration) * time.Minute)

	code := fmt.Sprintf("%08X", time.Now().UnixNano()%100000000)

	created, err := s.Events.CreateEvent(ctx, calendar.EventRequest{
		Title:         fmt.Sprintf("Spanish Class: %s - %s", req.ServiceName, req.UserName),
		Description:   eventDescription(req),
		Start:         start.Format(time.RFC3339),
		End:           end.Format(time.RFC3339),
		AttendeeEmail: req.UserEmail,
		AttendeeName:  req.UserName,
		Timezone:      s.home.String(),
	})
	if err != nil {
		// Same status mapping as the standalone event endpoint, so a slot
		// conflict surfaces as 409 here too instead of a generic 500.
		log.Printf("Error creating calendar event for booking: %v", err)
		status, msg := calendar.StatusForEventError(err)
		return nil, errs.NewHTTPError(status, msg)
	}

	booking := &db.Booking{
		Code:            code,
		UserName:        req.UserName,
		UserEmail:       req.UserEmail,
		UserPhone:       req.UserPhone,
		Level:           req.Level,
		Goals:           req.Goals,
		ServiceType:     req.ServiceType,
		ServiceName:     req.ServiceName,
		Price:           req.Price,
		DurationMinutes: duration,
		Timezone:        req.Timezone,
		Language:        utils.NormalizeLanguage(req.Language),
		Status:          statusConfirmed,
		PaymentIntentID: req.PaymentIntentID,
		EventID:         created.EventID,
		HangoutLink:     created.HangoutLink,
		StartTime:       start,
		EndTime:         end,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}
	if err := s.Repo.CreateBooking(booking); err != nil {
		log.Printf("Error creating booking in repository: %v", err)
		return nil, err
	}

	resp := repository.BookingToResponse(booking)
	status := StatusTranslation(statusConfirmed, resp.Language)
	s.Sender.SendBookingEmail(resp, status)
	s.Sender.SendBookingSMS(resp, status)
	return &resp, nil
}

func (s *BookingService) GetBookingByCode(code, email string) (*entities.BookingResponse, error) {
	booking, err := s.Repo.GetBookingByCode(code, email)
	if err != nil {
		return nil, errs.ErrNotFound("booking not found")
	}
	resp := repository.BookingToResponse(booking)
	return &resp, nil
}

func (s *BookingService) ListBookings(date, status string, limit, offset int) (*entities.BookingsList, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.ListBookings(date, status, limit, offset)
}

func validateBookingRequest(req *entities.BookingRequest) error {
	if strings.TrimSpace(req.UserName) == "" {
		return errs.ErrBadRequest("name is required")
	}
	if !strings.Contains(req.UserEmail, "@") {
		return errs.ErrBadRequest("valid email address is required")
	}
	if strings.TrimSpace(req.ServiceType) == "" {
		return errs.ErrBadRequest("service type is required")
	}
	if req.Date == "" || req.HomeTime == "" {
		return errs.ErrBadRequest("date and time are required")
	}
	return nil
}

func eventDescription(req *entities.BookingRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Student: %s (%s)\n", req.UserName, req.UserEmail)
	if req.Level != "" {
		fmt.Fprintf(&b, "Level: %s\n", req.Level)
	}
	if req.Goals != "" {
		fmt.Fprintf(&b, "Goals: %s\n", req.Goals)
	}
	if req.Timezone != "" {
		fmt.Fprintf(&b, "Student timezone: %s\n", req.Timezone)
	}
	return b.String()
}
