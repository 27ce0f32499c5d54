package service

import (
	"context"
	"fmt"

	"chamber-connect-backend/internal/apperr"
	"chamber-connect-backend/internal/logger"
	"chamber-connect-backend/internal/metrics"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(ctx context.Context, operation, kind, to, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		metrics.EmailsSent.WithLabelValues(kind, "error").Inc()
		logger.ExternalServiceResult("sendgrid", operation, err, "email", to)
		return apperr.ThirdParty(operation, "sendgrid", err)
	}
	if response.StatusCode >= 400 {
		metrics.EmailsSent.WithLabelValues(kind, "error").Inc()
		err := fmt.Errorf("sendgrid status %d: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", operation, err, "email", to)
		e := apperr.ThirdParty(operation, "sendgrid", err)
		e.StatusCode = response.StatusCode
		e.RateLimited = response.StatusCode == 429
		return e
	}

	metrics.EmailsSent.WithLabelValues(kind, "ok").Inc()
	logger.ExternalServiceResult("sendgrid", operation, nil, "email", to)
	return nil
}

func (s *emailService) SendInvitation(ctx context.Context, email, chamberName, code string) error {
	subject := fmt.Sprintf("You're invited to join %s on Chamber Connect", chamberName)
	body := fmt.Sprintf(
		"Hello,\n\nYou have been invited to join %s on Chamber Connect.\n\nUse this invitation code to complete your registration:\n\n%s\n\nBest regards,\nThe Chamber Connect Team",
		chamberName, code)
	return s.send(ctx, "email.send_invitation", "invitation", email, subject, body)
}

func (s *emailService) SendMembershipDecision(ctx context.Context, email, chamberName string, approved bool) error {
	decision := "approved"
	if !approved {
		decision = "declined"
	}
	subject := fmt.Sprintf("Your membership request for %s", chamberName)
	body := fmt.Sprintf(
		"Hello,\n\nYour request to join %s has been %s.\n\nBest regards,\nThe Chamber Connect Team",
		chamberName, decision)
	return s.send(ctx, "email.send_membership_decision", "membership_decision", email, subject, body)
}

func (s *emailService) SendTrialEndingReminder(ctx context.Context, email, chamberName string, daysLeft int) error {
	subject := fmt.Sprintf("Your %s trial ends in %d days", chamberName, daysLeft)
	body := fmt.Sprintf(
		"Hello,\n\nThe Chamber Connect trial for %s ends in %d days. Pick a plan to keep member management, events and analytics running without interruption.\n\nBest regards,\nThe Chamber Connect Team",
		chamberName, daysLeft)
	return s.send(ctx, "email.send_trial_reminder", "trial_reminder", email, subject, body)
}
