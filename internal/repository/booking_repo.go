package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"tutoria/internal/db"
	"tutoria/internal/entities"
)

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

const bookingColumns = `
	id, code, user_name, user_email, user_phone, level, goals,
	service_type, service_name, price, duration_minutes, timezone, language,
	status, payment_intent_id, event_id, hangout_link,
	start_time, end_time, reminder_sent, created_at, updated_at`

func (r *BookingRepository) CreateBooking(b *db.Booking) error {
	query := `
		INSERT INTO bookings
		(code, user_name, user_email, user_phone, level, goals,
		 service_type, service_name, price, duration_minutes, timezone, language,
		 status, payment_intent_id, event_id, hangout_link,
		 start_time, end_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		b.Code,
		b.UserName,
		b.UserEmail,
		b.UserPhone,
		b.Level,
		b.Goals,
		b.ServiceType,
		b.ServiceName,
		b.Price,
		b.DurationMinutes,
		b.Timezone,
		b.Language,
		b.Status,
		b.PaymentIntentID,
		b.EventID,
		b.HangoutLink,
		b.StartTime,
		b.EndTime,
		b.CreatedAt,
		b.UpdatedAt,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BookingRepository) GetBookingByCode(code, email string) (*db.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE code = $1 AND user_email = $2`
	b, err := r.scanBooking(r.DB.QueryRow(query, code, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking with code '%s' and email '%s' not found: %w", code, email, err)
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return b, nil
}

func (r *BookingRepository) ListBookings(date, status string, limit, offset int) (*entities.BookingsList, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	idx := 1

	if date != "" {
		where += " AND DATE(start_time) = $" + strconv.Itoa(idx)
		args = append(args, date)
		idx++
	}
	if status != "" {
		where += " AND status = $" + strconv.Itoa(idx)
		args = append(args, status)
		idx++
	}

	var total int64
	if err := r.DB.QueryRow("SELECT COUNT(*) FROM bookings"+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("error counting bookings: %w", err)
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings` + where +
		" ORDER BY start_time DESC LIMIT $" + strconv.Itoa(idx) + " OFFSET $" + strconv.Itoa(idx+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer rows.Close()

	list := &entities.BookingsList{Total: total, Limit: limit, Offset: offset}
	for rows.Next() {
		b, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking row: %w", err)
		}
		list.Bookings = append(list.Bookings, toResponse(b))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking rows: %w", err)
	}
	return list, nil
}

func (r *BookingRepository) UpdateBookingStatus(code, newStatus string) error {
	result, err := r.DB.Exec(
		`UPDATE bookings SET status = $1, updated_at = NOW() WHERE code = $2`, newStatus, code)
	if err != nil {
		return fmt.Errorf("error updating booking status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("booking with code '%s' not found", code)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *BookingRepository) scanBooking(row rowScanner) (*db.Booking, error) {
	var b db.Booking
	err := row.Scan(
		&b.ID, &b.Code, &b.UserName, &b.UserEmail, &b.UserPhone, &b.Level, &b.Goals,
		&b.ServiceType, &b.ServiceName, &b.Price, &b.DurationMinutes, &b.Timezone, &b.Language,
		&b.Status, &b.PaymentIntentID, &b.EventID, &b.HangoutLink,
		&b.StartTime, &b.EndTime, &b.ReminderSent, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func toResponse(b *db.Booking) entities.BookingResponse {
	return entities.BookingResponse{
		Code:            b.Code,
		UserName:        b.UserName,
		UserEmail:       b.UserEmail,
		UserPhone:       b.UserPhone,
		Level:           b.Level,
		Goals:           b.Goals,
		ServiceType:     b.ServiceType,
		ServiceName:     b.ServiceName,
		Price:           b.Price,
		DurationMinutes: b.DurationMinutes,
		Timezone:        b.Timezone,
		Language:        b.Language,
		Status:          b.Status,
		EventID:         b.EventID,
		HangoutLink:     b.HangoutLink,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// BookingToResponse converts a storage row into the API shape.
func BookingToResponse(b *db.Booking) entities.BookingResponse {
	return toResponse(b)
}
