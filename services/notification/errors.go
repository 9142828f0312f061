package notification

import (
	"errors"
	"fmt"
	"net/textproto"
)

// ErrorKind categorises a transport failure.
type ErrorKind string

const (
	KindNotConfigured ErrorKind = "not_configured"
	KindConnection    ErrorKind = "connection"
	KindAuth          ErrorKind = "auth"
	KindAddress       ErrorKind = "address"
	KindSend          ErrorKind = "send"
)

// TransportError wraps an email transport failure with its category.
type TransportError struct {
	Kind ErrorKind
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// KindOf returns the category of err, or KindSend for errors that carry none.
func KindOf(err error) ErrorKind {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindSend
}

// classifyDialError reports auth only when the server answered the login with a
// rejection reply. Dropped connections, TLS and STARTTLS failures are connection errors.
func classifyDialError(err error) *TransportError {
	var reply *textproto.Error
	if errors.As(err, &reply) {
		switch reply.Code {
		case 530, 534, 535:
			return &TransportError{Kind: KindAuth, Err: err}
		}
	}
	return &TransportError{Kind: KindConnection, Err: err}
}
