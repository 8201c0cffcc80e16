// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendWaitlistConfirmation(toEmail string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	clientURL   string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName, clientURL string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
		clientURL:   clientURL,
	}
}

func (s *emailService) SendWaitlistConfirmation(toEmail string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "You're on the Workflow Hub waitlist")
	m.SetBody("text/html", waitlistBody(s.clientURL))

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send waitlist confirmation to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Waitlist confirmation sent to %s\n", toEmail)
	return nil
}

func waitlistBody(clientURL string) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Thanks for joining the waitlist!</h2>
			<p>We'll let you know as soon as unlimited chat with the Workflow Guide opens up.</p>
			<p>In the meantime you can keep chatting by adding your own API key at
			<a href="%s" style="color: #007BFF;">%s</a>.</p>
			<p>If you didn't sign up, please ignore this email.</p>
		</div>
	`, clientURL, clientURL)
}
