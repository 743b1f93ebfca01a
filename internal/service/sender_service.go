package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"tutoria/internal/entities"
)

// SenderService composes booking emails and SMS in the student's language
// and timezone and hands them to the Notifier asynchronously.
type SenderService struct {
	notifier *Notifier
	home     *time.Location
}

func NewSenderService(notifier *Notifier, home *time.Location) *SenderService {
	return &SenderService{notifier: notifier, home: home}
}

func (s *SenderService) studentLocation(tz string) *time.Location {
	if tz == "" {
		return s.home
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return s.home
	}
	return loc
}

func (s *SenderService) SendBookingEmail(booking entities.BookingResponse, status string) {
	loc := s.studentLocation(booking.Timezone)

	emailData := entities.BookingEmailData{
		UserName:           booking.UserName,
		BookingCode:        booking.Code,
		ServiceName:        booking.ServiceName,
		StartTimeFormatted: booking.StartTime.In(loc).Format("02 Jan 2006 15:04 MST"),
		EndTimeFormatted:   booking.EndTime.In(loc).Format("02 Jan 2006 15:04 MST"),
		HangoutLink:        booking.HangoutLink,
		CurrentYear:        time.Now().In(loc).Year(),
		Language:           booking.Language,
		Status:             status,
	}

	var emailSubject, plainTextBody string
	switch booking.Language {
	case "es":
		emailSubject = fmt.Sprintf("Tu clase de español está %s - Código: %s", status, emailData.BookingCode)
		plainTextBody = fmt.Sprintf(
			"Hola %s,\n\nTu clase de español está %s.\n\n"+
				"Detalles de la reserva:\n"+
				"Código: %s\n"+
				"Clase: %s\n"+
				"Comienzo: %s\n"+
				"Fin: %s\n"+
				"Enlace de Meet: %s\n\n"+
				"¡Nos vemos en clase!\n\n"+
				"Learn With Sarai.",
			emailData.UserName, status, emailData.BookingCode, emailData.ServiceName,
			emailData.StartTimeFormatted, emailData.EndTimeFormatted, emailData.HangoutLink,
		)
	default:
		emailSubject = fmt.Sprintf("Your Spanish class is %s - Code: %s", status, emailData.BookingCode)
		plainTextBody = fmt.Sprintf(
			"Hello %s,\n\nYour Spanish class is %s.\n\n"+
				"Booking details:\n"+
				"Code: %s\n"+
				"Class: %s\n"+
				"Starts: %s\n"+
				"Ends: %s\n"+
				"Meet link: %s\n\n"+
				"See you in class!\n\n"+
				"Learn With Sarai.",
			emailData.UserName, status, emailData.BookingCode, emailData.ServiceName,
			emailData.StartTimeFormatted, emailData.EndTimeFormatted, emailData.HangoutLink,
		)
	}

	htmlBody := ""
	tmplPath := filepath.Join("internal", "templates", "booking_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("WARNING: could not parse email template (%s): %v", tmplPath, err)
	} else {
		var htmlBodyBuffer bytes.Buffer
		if err := tmpl.Execute(&htmlBodyBuffer, emailData); err != nil {
			log.Printf("WARNING: could not execute email template for booking %s: %v", emailData.BookingCode, err)
		}
		htmlBody = htmlBodyBuffer.String()
	}
	if htmlBody == "" {
		htmlBody = "<pre>" + template.HTMLEscapeString(plainTextBody) + "</pre>"
	}

	go func(toEmail, toName, subject, plainBody, htmlContent string) {
		if err := s.notifier.SendEmail(toEmail, toName, subject, plainBody, htmlContent); err != nil {
			log.Printf("WARNING (async): email for booking %s failed: %v", emailData.BookingCode, err)
		}
	}(booking.UserEmail, emailData.UserName, emailSubject, plainTextBody, htmlBody)
}

func (s *SenderService) SendBookingSMS(booking entities.BookingResponse, status string) {
	if booking.UserPhone == "" {
		return
	}
	loc := s.studentLocation(booking.Timezone)
	startFormatted := booking.StartTime.In(loc).Format("02/01 15:04")

	var smsMessage string
	switch booking.Language {
	case "es":
		smsMessage = fmt.Sprintf("Learn With Sarai: ¡Tu clase %s está %s!\nComienzo: %s.\nMás detalles en tu correo.",
			booking.Code, status, startFormatted)
	default:
		smsMessage = fmt.Sprintf("Learn With Sarai: class %s is %s!\nStarts: %s.\nMore details in your email.",
			booking.Code, status, startFormatted)
	}

	go func(toNumber, body string) {
		if err := s.notifier.SendSMS(toNumber, body); err != nil {
			log.Printf("WARNING (async): SMS for booking %s failed: %v", booking.Code, err)
		}
	}(booking.UserPhone, smsMessage)
}

// StatusTranslation translates a booking status for message content.
func StatusTranslation(status, lang string) string {
	if lang == "es" {
		switch status {
		case "confirmed":
			return "confirmada"
		case "completed":
			return "finalizada"
		case "cancelled", "canceled":
			return "cancelada"
		case "upcoming":
			return "próxima"
		}
	}
	return status
}
