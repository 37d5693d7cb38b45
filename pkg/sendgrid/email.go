package sendgrid

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService sends the post-checkout confirmation email.
type EmailService interface {
	SendOrderConfirmation(ctx context.Context, to string, orderID string, total float64) error
}

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey string, fromEmail string, fromName string) EmailService {
	return &emailService{client: sendgrid.NewSendClient(apiKey), fromEmail: fromEmail, fromName: fromName}
}

func (e *emailService) SendOrderConfirmation(ctx context.Context, to string, orderID string, total float64) error {

	from := mail.NewEmail(e.fromName, e.fromEmail)
	recipient := mail.NewEmail("", to)

	message := mail.NewV3Mail()
	message.SetFrom(from)

	personalization := mail.NewPersonalization()
	personalization.AddTos(recipient)
	personalization.Subject = fmt.Sprintf("Your LUXE order %s is confirmed", orderID)
	message.AddPersonalizations(personalization)

	plain := fmt.Sprintf("Thank you! Your order %s totaling $%.2f has been placed successfully.", orderID, total)
	html := fmt.Sprintf("<p>Thank you! Your order <strong>%s</strong> totaling $%.2f has been placed successfully.</p>", orderID, total)

	message.AddContent(mail.NewContent("text/plain", plain))
	message.AddContent(mail.NewContent("text/html", html))

	response, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}
