// Package channel wraps the external delivery providers behind a uniform
// adapter interface. Adapters never panic past their boundary: every
// transport-level problem comes back as an error classifiable by Cause.
package channel

import (
	"context"
	"errors"
	"net"

	"github.com/adr1ang1lbert/birth-vaccine-system/internal/model"
)

// ErrInvalidDestination marks a destination that is malformed for the
// channel. It is detected before any network call is made.
var ErrInvalidDestination = errors.New("invalid destination")

// Adapter is one delivery transport. A single Send call makes at most one
// provider round trip; retries are the caller's decision.
type Adapter interface {
	Name() model.Channel
	// Configured reports whether provider credentials were provisioned.
	// Unconfigured adapters must not be sent through.
	Configured() bool
	Send(ctx context.Context, destination string, msg model.Message) error
}

// Cause classifies a Send error into the failure taxonomy used by
// notification attempts.
func Cause(err error) model.FailureCause {
	switch {
	case errors.Is(err, ErrInvalidDestination):
		return model.CauseInvalidDestination
	case errors.Is(err, context.DeadlineExceeded):
		return model.CauseTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return model.CauseTimeout
	}

	return model.CauseProviderError
}
