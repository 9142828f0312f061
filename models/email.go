package models

// EmailMessage is a rendered email ready for the transport.
type EmailMessage struct {
	To       string
	ReplyTo  string
	Subject  string
	HTMLBody string
	TextBody string
}

// TransportCheck categorises the result of a transport login handshake.
type TransportCheck string

const (
	TransportOK            TransportCheck = "ok"
	TransportNotConfigured TransportCheck = "not_configured"
	TransportAuthFailed    TransportCheck = "auth_failed"
	TransportUnreachable   TransportCheck = "connection_failed"
)

// TransportCheckResult is the outcome of testing the email transport.
type TransportCheckResult struct {
	Status  TransportCheck `json:"status"`
	Message string         `json:"message"`
}

// OK reports whether the handshake succeeded.
func (r TransportCheckResult) OK() bool {
	return r.Status == TransportOK
}
