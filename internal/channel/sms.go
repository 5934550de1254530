package channel

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/adr1ang1lbert/birth-vaccine-system/internal/model"
	"github.com/adr1ang1lbert/birth-vaccine-system/pkg/sms"
)

// phoneRe accepts international phone numbers with an optional leading plus.
var phoneRe = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// SMS delivers the short text variant of a reminder through the SMS gateway.
type SMS struct {
	client  *sms.Client
	timeout time.Duration
}

// NewSMS creates the SMS adapter. A nil client marks the channel as not
// configured for this deployment.
func NewSMS(client *sms.Client, timeout time.Duration) *SMS {
	return &SMS{client: client, timeout: timeout}
}

func (a *SMS) Name() model.Channel { return model.ChannelSMS }

func (a *SMS) Configured() bool { return a.client != nil }

func (a *SMS) Send(ctx context.Context, destination string, msg model.Message) error {
	if !phoneRe.MatchString(destination) {
		return fmt.Errorf("%w: %q is not a phone number", ErrInvalidDestination, destination)
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	if err := a.client.Send(ctx, destination, msg.Text); err != nil {
		return fmt.Errorf("sms send to %s: %w", destination, err)
	}

	return nil
}
