package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"tenantops-backend/internal/domain"
	"tenantops-backend/internal/logger"
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

func (s *emailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

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

func (s *emailService) SendRegistrationApproved(ctx context.Context, email, firstName, companyName, tempPassword string) error {
	logger.ExternalServiceCall("sendgrid", "SendRegistrationApproved", "email", email)
	subject := fmt.Sprintf("Your registration for %s has been approved", companyName)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour company %s has been approved. Sign in with your email address and the temporary password below, then change it right away.\n\nTemporary password: %s\n",
		firstName, companyName, tempPassword)
	err := s.send(email, firstName, subject, body)
	logger.ExternalServiceResult("sendgrid", "SendRegistrationApproved", err)
	return err
}

func (s *emailService) SendRegistrationRejected(ctx context.Context, email, firstName, companyName string) error {
	logger.ExternalServiceCall("sendgrid", "SendRegistrationRejected", "email", email)
	subject := fmt.Sprintf("Your registration for %s was not approved", companyName)
	body := fmt.Sprintf(
		"Hello %s,\n\nWe reviewed the registration request for %s and could not approve it. Reply to this email if you believe this is a mistake.\n",
		firstName, companyName)
	err := s.send(email, firstName, subject, body)
	logger.ExternalServiceResult("sendgrid", "SendRegistrationRejected", err)
	return err
}

func (s *emailService) SendCancellationDecision(ctx context.Context, email, companyName string, approved bool) error {
	logger.ExternalServiceCall("sendgrid", "SendCancellationDecision", "email", email, "approved", approved)
	var subject, body string
	if approved {
		subject = fmt.Sprintf("Cancellation request for %s approved", companyName)
		body = fmt.Sprintf("The cancellation request for %s has been approved.\n", companyName)
	} else {
		subject = fmt.Sprintf("Cancellation request for %s declined", companyName)
		body = fmt.Sprintf("The cancellation request for %s was reviewed and declined. The subscription remains in place.\n", companyName)
	}
	err := s.send(email, companyName, subject, body)
	logger.ExternalServiceResult("sendgrid", "SendCancellationDecision", err)
	return err
}

func (s *emailService) SendLicenseExpiryReminder(ctx context.Context, email, companyName string, daysLeft int) error {
	logger.ExternalServiceCall("sendgrid", "SendLicenseExpiryReminder", "email", email)
	subject := fmt.Sprintf("License for %s expires in %d day(s)", companyName, daysLeft)
	body := fmt.Sprintf(
		"The license for %s expires in %d day(s). Renew it to keep access uninterrupted.\n",
		companyName, daysLeft)
	err := s.send(email, companyName, subject, body)
	logger.ExternalServiceResult("sendgrid", "SendLicenseExpiryReminder", err)
	return err
}

func (s *emailService) SendReconciliationReport(ctx context.Context, opsEmail string, entries []domain.ReconciliationEntry) error {
	logger.ExternalServiceCall("sendgrid", "SendReconciliationReport", "entries", len(entries))

	var b strings.Builder
	fmt.Fprintf(&b, "%d provisioning inconsistencies need manual review:\n\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "- [%s] request %s, identity %q, email %s: %s (since %s)\n",
			e.Kind, e.RequestID, e.IdentityID, e.Email, e.Diagnostic, e.CreatedOn.Format("2006-01-02"))
	}

	err := s.send(opsEmail, "Operations", fmt.Sprintf("Reconciliation report: %d open entries", len(entries)), b.String())
	logger.ExternalServiceResult("sendgrid", "SendReconciliationReport", err)
	return err
}
