package service

import (
	"context"
	"fmt"

	"sendika-backend/internal/domain"
	"sendika-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

// NewEmailService builds the SendGrid-backed mailer. With an empty API key
// (local development) sends are logged and skipped instead of failing.
func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, body string) error {
	if s.apiKey == "" {
		logger.Info("email sending disabled, skipping", "to", to, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendApplicationReceived(ctx context.Context, email, name string) error {
	body := fmt.Sprintf("Sayın %s,\n\nÜyelik başvurunuz alınmıştır. Başvurunuz incelendikten sonra bilgilendirileceksiniz.\n\nSaygılarımızla", name)
	return s.send(email, name, "Üyelik Başvurunuz Alındı", body)
}

func (s *emailService) SendMembershipApproved(ctx context.Context, email, name, registrationNumber string) error {
	body := fmt.Sprintf("Sayın %s,\n\nÜyelik başvurunuz onaylanmıştır. Sicil numaranız: %s.\n\nSaygılarımızla", name, registrationNumber)
	return s.send(email, name, "Üyelik Başvurunuz Onaylandı", body)
}

func (s *emailService) SendMembershipCancelled(ctx context.Context, email, name string, status domain.MemberStatus, reason string) error {
	body := fmt.Sprintf("Sayın %s,\n\nÜyelik durumunuz %s olarak güncellenmiştir.", name, status)
	if reason != "" {
		body += fmt.Sprintf("\n\nGerekçe: %s", reason)
	}
	body += "\n\nSaygılarımızla"
	return s.send(email, name, "Üyelik Durumu Güncellendi", body)
}

func (s *emailService) SendDuesReminder(ctx context.Context, email, name string, month, year int32) error {
	body := fmt.Sprintf("Sayın %s,\n\n%d/%d dönemi aidat ödemeniz kayıtlarımızda görünmemektedir. Ödemenizi en kısa sürede yapmanızı rica ederiz.\n\nSaygılarımızla", name, month, year)
	return s.send(email, name, "Aidat Hatırlatması", body)
}
