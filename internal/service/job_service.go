package service

import (
	"fmt"
	"log"
	"time"

	"tutoria/internal/repository"
)

type JobService struct {
	Repo   *repository.JobRepository
	Sender *SenderService
}

func NewJobService(repo *repository.JobRepository, sender *SenderService) *JobService {
	return &JobService{Repo: repo, Sender: sender}
}

// CompleteFinishedClasses marks confirmed classes whose end time has
// passed as completed.
func (s *JobService) CompleteFinishedClasses() error {
	log.Println("Cron Job: Checking for classes to mark as 'completed'...")

	bookingIDs, err := s.Repo.GetConfirmedBookingIDsPastEndTime()
	if err != nil {
		return fmt.Errorf("cron job: failed to get confirmed bookings past end time: %w", err)
	}
	if len(bookingIDs) == 0 {
		log.Println("Cron Job: No confirmed classes found past their end time.")
		return nil
	}

	log.Printf("Cron Job: Found %d classes to mark as 'completed'. IDs: %v", len(bookingIDs), bookingIDs)
	if err := s.Repo.UpdateBookingStatuses(bookingIDs, statusCompleted); err != nil {
		return fmt.Errorf("cron job: failed to update booking statuses: %w", err)
	}
	return nil
}

// SendClassReminders emails and texts students whose class starts within
// the next 24 hours, once per booking.
func (s *JobService) SendClassReminders() error {
	bookings, err := s.Repo.GetBookingsDueReminder(24 * time.Hour)
	if err != nil {
		return fmt.Errorf("cron job: failed to get bookings due reminder: %w", err)
	}
	if len(bookings) == 0 {
		return nil
	}

	var reminded []int
	for i := range bookings {
		resp := repository.BookingToResponse(&bookings[i])
		status := StatusTranslation("upcoming", resp.Language)
		s.Sender.SendBookingEmail(resp, status)
		s.Sender.SendBookingSMS(resp, status)
		reminded = append(reminded, bookings[i].ID)
	}

	log.Printf("Cron Job: Sent reminders for %d classes.", len(reminded))
	if err := s.Repo.MarkRemindersSent(reminded); err != nil {
		return fmt.Errorf("cron job: failed to mark reminders sent: %w", err)
	}
	return nil
}
