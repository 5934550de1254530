package channel

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/adr1ang1lbert/birth-vaccine-system/internal/model"
	"github.com/adr1ang1lbert/birth-vaccine-system/pkg/email"
)

// Email delivers the HTML variant of a reminder over SMTP.
type Email struct {
	client *email.Client
}

// NewEmail creates the email adapter. A nil client marks the channel as
// not configured for this deployment.
func NewEmail(client *email.Client) *Email {
	return &Email{client: client}
}

func (a *Email) Name() model.Channel { return model.ChannelEmail }

func (a *Email) Configured() bool { return a.client != nil }

func (a *Email) Send(ctx context.Context, destination string, msg model.Message) error {
	if _, err := mail.ParseAddress(destination); err != nil {
		return fmt.Errorf("%w: %q is not an email address", ErrInvalidDestination, destination)
	}

	// The SMTP client has no context support; the dial timeout is set on
	// the client itself. Honor an already-cancelled context up front.
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := a.client.Send(destination, msg.Subject, msg.Text, msg.HTML); err != nil {
		return fmt.Errorf("email send to %s: %w", destination, err)
	}

	return nil
}
