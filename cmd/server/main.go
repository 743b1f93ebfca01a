package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"tutoria/internal/api"
	"tutoria/internal/auth"
	"tutoria/internal/availability"
	"tutoria/internal/calendar"
	"tutoria/internal/config"
	"tutoria/internal/repository"
	"tutoria/internal/service"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	homeLoc, err := time.LoadLocation(cfg.HomeTimezone)
	if err != nil {
		log.Fatalf("Invalid HOME_TIMEZONE %q: %v", cfg.HomeTimezone, err)
	}

	engine, err := availability.NewEngine(availability.Config{
		HomeTimezone:      cfg.HomeTimezone,
		Schedule:          cfg.TimeSlots,
		SlotDuration:      time.Duration(cfg.SlotDurationMinutes) * time.Minute,
		WeekendByHomeDate: true,
	})
	if err != nil {
		log.Fatalf("Failed to build availability engine: %v", err)
	}

	// The calendar client degrades to an explicit not-configured stand-in
	// so the availability endpoint can still answer.
	var busySource api.BusySource
	var eventCreator service.EventCreator
	client, err := calendar.NewClient(context.Background(), calendar.Config{
		ServiceAccountEmail: cfg.GoogleServiceAccountEmail,
		PrivateKey:          cfg.GooglePrivateKey,
		ImpersonateEmail:    cfg.ImpersonateEmail,
		PrimaryCalendarID:   cfg.PrimaryCalendarID,
		BusyCalendarIDs:     cfg.BusyCalendarIDs,
	})
	switch {
	case err == nil:
		busySource, eventCreator = client, client
	case errors.Is(err, calendar.ErrNotConfigured):
		log.Println("Google Calendar credentials not configured, calendar features disabled")
		busySource, eventCreator = calendar.NotConfigured{}, calendar.NotConfigured{}
	default:
		log.Fatalf("Failed to create calendar client: %v", err)
	}

	bookingRepo := repository.NewBookingRepository(db)
	jobRepo := repository.NewJobRepository(db)
	adminAuthRepo := repository.NewAdminAuthRepository(db)

	notifier := service.NewNotifier(service.NotifyConfig{
		SendGridAPIKey:    cfg.SendGridAPIKey,
		SendGridFromEmail: cfg.SendGridFromEmail,
		SendGridFromName:  cfg.SendGridFromName,
		TwilioAccountSID:  cfg.TwilioAccountSID,
		TwilioAuthToken:   cfg.TwilioAuthToken,
		TwilioFromNumber:  cfg.TwilioFromNumber,
	})
	sender := service.NewSenderService(notifier, homeLoc)
	bookingSvc := service.NewBookingService(bookingRepo, eventCreator, sender, homeLoc)
	paymentSvc := service.NewPaymentService(cfg.StripeSecretKey)
	adminAuthSvc := service.NewAdminAuthService(adminAuthRepo, cfg.JWTSecret)
	jobSvc := service.NewJobService(jobRepo, sender)

	availabilityHandler := api.NewAvailabilityHandler(engine, busySource)
	eventHandler := api.NewEventHandler(eventCreator, cfg.HomeTimezone)
	paymentHandler := api.NewPaymentHandler(paymentSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc)
	adminHandler := api.NewAdminHandler(bookingSvc)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/calendar/availability", availabilityHandler.GetAvailability).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/calendar/create-event", eventHandler.CreateEvent).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/create-payment-intent", paymentHandler.CreatePaymentIntent).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/bookings", bookingHandler.CreateBooking).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/bookings/{code}", bookingHandler.GetBooking).Methods("GET")
	r.HandleFunc("/admin/login", adminAuthHandler.Login).Methods("POST")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware(cfg.JWTSecret))
	admin.HandleFunc("/bookings", adminHandler.ListBookings).Methods("GET")
	admin.HandleFunc("/users", adminAuthHandler.CreateAdmin).Methods("POST")

	c := cron.New()
	c.AddFunc("@every 15m", func() {
		if err := jobSvc.SendClassReminders(); err != nil {
			log.Printf("Reminder job failed: %v", err)
		}
	})
	c.AddFunc("@hourly", func() {
		if err := jobSvc.CompleteFinishedClasses(); err != nil {
			log.Printf("Completion job failed: %v", err)
		}
	})
	c.Start()

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, cors(r)))
}
