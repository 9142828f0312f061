package notification

import (
	"context"
	"errors"

	"ingcap/models"
)

var errNotConfigured = errors.New("email transport is not configured")

// DisabledMailer stands in for the transport when no credentials are configured.
type DisabledMailer struct{}

func NewDisabledMailer() DisabledMailer {
	return DisabledMailer{}
}

func (DisabledMailer) Send(context.Context, ...models.EmailMessage) error {
	return &TransportError{Kind: KindNotConfigured, Err: errNotConfigured}
}

func (DisabledMailer) Check(context.Context) models.TransportCheckResult {
	return models.TransportCheckResult{
		Status:  models.TransportNotConfigured,
		Message: "Email is not configured. Bookings are saved without notifications.",
	}
}
