package notification

import (
	"context"

	"ingcap/models"
)

// Mailer delivers transactional email on a best-effort basis.
type Mailer interface {
	// Send delivers every message over one transport session. A failure of any
	// message fails the call with a *TransportError.
	Send(ctx context.Context, msgs ...models.EmailMessage) error
	// Check performs the login handshake without sending mail.
	Check(ctx context.Context) models.TransportCheckResult
}
