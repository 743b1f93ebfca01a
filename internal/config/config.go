package config

import (
	"os"
	"strconv"
	"strings"
)

// DefaultTimeSlots is the teaching grid in home-timezone wall-clock time:
// 30-minute slots from 14:00 through 22:00.
var DefaultTimeSlots = []string{
	"14:00", "14:30", "15:00", "15:30",
	"16:00", "16:30", "17:00", "17:30", "18:00", "18:30",
	"19:00", "19:30", "20:00", "20:30", "21:00", "21:30", "22:00",
}

// Config collects everything the server reads from the environment, so
// constructors receive values explicitly instead of calling os.Getenv.
type Config struct {
	Port        string
	DatabaseURL string

	HomeTimezone        string
	TimeSlots           []string
	SlotDurationMinutes int

	GoogleServiceAccountEmail string
	GooglePrivateKey          string
	ImpersonateEmail          string
	PrimaryCalendarID         string
	BusyCalendarIDs           []string

	StripeSecretKey string

	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	JWTSecret string
}

func Load() Config {
	cfg := Config{
		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		HomeTimezone:        getEnv("HOME_TIMEZONE", "Atlantic/Canary"),
		TimeSlots:           DefaultTimeSlots,
		SlotDurationMinutes: getEnvInt("SLOT_DURATION_MINUTES", 30),

		GoogleServiceAccountEmail: os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"),
		GooglePrivateKey:          os.Getenv("GOOGLE_PRIVATE_KEY"),
		ImpersonateEmail:          os.Getenv("IMPERSONATE_USER_EMAIL"),
		PrimaryCalendarID:         os.Getenv("GOOGLE_CALENDAR_ID"),

		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),

		SendGridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		SendGridFromEmail: os.Getenv("SENDGRID_FROM_EMAIL"),
		SendGridFromName:  os.Getenv("SENDGRID_FROM_NAME"),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),

		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	if slots := os.Getenv("TIME_SLOTS"); slots != "" {
		cfg.TimeSlots = splitList(slots)
	}
	// GOOGLE_CALENDAR_IDS adds extra availability-blocking calendars (for
	// example a third-party booking platform) on top of the primary one.
	if ids := os.Getenv("GOOGLE_CALENDAR_IDS"); ids != "" {
		cfg.BusyCalendarIDs = splitList(ids)
	} else if cfg.PrimaryCalendarID != "" {
		cfg.BusyCalendarIDs = []string{cfg.PrimaryCalendarID}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
