package notifications

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"roomly/internal/shared/config"
)

// EmailSender delivers guest-facing emails.
type EmailSender interface {
	SendBookingConfirmation(ctx context.Context, message *Message) error
}

type smtpSender struct {
	cfg      config.EmailConfig
	template *template.Template
}

const confirmationTemplate = `<html>
<body>
<h2>Your booking is confirmed</h2>
<p>Booking #{{.Booking.BookingID}}, room {{.Booking.RoomNumber}}.</p>
<p>Check-in: {{.Booking.CheckInDate.Format "2 Jan 2006"}}<br>
Check-out: {{.Booking.CheckOutDate.Format "2 Jan 2006"}}</p>
<p>Total paid: RM {{printf "%.2f" .Booking.TotalPrice}}</p>
<p>Show the QR code from your bookings page at the front desk to check in.</p>
</body>
</html>`

func NewSMTPSender(cfg config.EmailConfig) (EmailSender, error) {
	tmpl, err := template.New("booking_confirmation").Parse(confirmationTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse confirmation template: %w", err)
	}
	return &smtpSender{cfg: cfg, template: tmpl}, nil
}

func (s *smtpSender) SendBookingConfirmation(ctx context.Context, message *Message) error {
	if message.Booking.UserEmail == "" {
		return fmt.Errorf("notification %s has no recipient email", message.ID)
	}

	var body bytes.Buffer
	if err := s.template.Execute(&body, message); err != nil {
		return fmt.Errorf("failed to render confirmation email: %w", err)
	}

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Booking #%d confirmed\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n",
		s.cfg.FromEmail, message.Booking.UserEmail, message.Booking.BookingID)

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)

	return smtp.SendMail(addr, auth, s.cfg.FromEmail,
		[]string{message.Booking.UserEmail},
		append([]byte(headers), body.Bytes()...))
}
