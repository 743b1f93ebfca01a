package utils

import "strings"

// DurationForService maps a service type to its class length in minutes.
// Trial classes take a single 30-minute grid slot; regular classes run a
// full hour (two slots).
func DurationForService(serviceType string) int {
	switch strings.ToLower(strings.TrimSpace(serviceType)) {
	case "trial", "trial-class":
		return 30
	default:
		return 60
	}
}

// NormalizeLanguage narrows a requested content language to the ones the
// email and SMS templates exist in.
func NormalizeLanguage(lang string) string {
	if strings.ToLower(strings.TrimSpace(lang)) == "es" {
		return "es"
	}
	return "en"
}
