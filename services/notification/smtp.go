package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ingcap/models"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// SMTPSettings configures the outbound SMTP transport.
type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	UseSSL   bool // implicit TLS; otherwise STARTTLS is required
	Timeout  time.Duration

	// AllowPlaintext falls back to an unencrypted session when the server does not
	// offer STARTTLS. Only meant for local relays.
	AllowPlaintext bool
}

// SMTPMailer sends email through an authenticated SMTP server.
type SMTPMailer struct {
	settings SMTPSettings
	logger   *zap.Logger
}

func NewSMTPMailer(settings SMTPSettings, logger *zap.Logger) *SMTPMailer {
	if settings.Timeout <= 0 {
		settings.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPMailer{settings: settings, logger: logger}
}

func (m *SMTPMailer) newClient() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(m.settings.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.settings.Username),
		mail.WithPassword(m.settings.Password),
		mail.WithTimeout(m.settings.Timeout),
	}
	switch {
	case m.settings.UseSSL:
		opts = append(opts, mail.WithSSL())
	case m.settings.AllowPlaintext:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	default:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}
	return mail.NewClient(m.settings.Host, opts...)
}

// Send delivers the messages in one SMTP session. Each message is built and sent
// on its own, so a bad address on one does not hold back the others. The returned
// *TransportError carries the kind of the first failure and joins all of them.
func (m *SMTPMailer) Send(ctx context.Context, msgs ...models.EmailMessage) error {
	var (
		failures []error
		kind     ErrorKind
	)
	fail := func(k ErrorKind, err error) {
		if kind == "" {
			kind = k
		}
		failures = append(failures, err)
	}

	out := make([]*mail.Msg, 0, len(msgs))
	for _, e := range msgs {
		msg, err := m.buildMsg(e)
		if err != nil {
			fail(KindAddress, err)
			continue
		}
		out = append(out, msg)
	}

	if len(out) > 0 {
		m.deliver(ctx, out, fail)
	}

	if len(failures) > 0 {
		return &TransportError{Kind: kind, Err: errors.Join(failures...)}
	}
	return nil
}

func (m *SMTPMailer) deliver(ctx context.Context, out []*mail.Msg, fail func(ErrorKind, error)) {
	client, err := m.newClient()
	if err != nil {
		fail(KindConnection, fmt.Errorf("failed to create SMTP client: %w", err))
		return
	}
	if err := client.DialWithContext(ctx); err != nil {
		te := classifyDialError(err)
		fail(te.Kind, te.Err)
		return
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			m.logger.Debug("smtp: close failed", zap.Error(cerr))
		}
	}()

	delivered := 0
	for _, msg := range out {
		if err := client.Send(msg); err != nil {
			fail(KindSend, err)
			continue
		}
		delivered++
	}
	m.logger.Info("smtp: messages delivered", zap.Int("count", delivered), zap.Int("attempted", len(out)))
}

// Check dials and authenticates, then disconnects.
func (m *SMTPMailer) Check(ctx context.Context) models.TransportCheckResult {
	client, err := m.newClient()
	if err != nil {
		return models.TransportCheckResult{
			Status:  models.TransportUnreachable,
			Message: fmt.Sprintf("SMTP client configuration invalid: %v", err),
		}
	}
	if err := client.DialWithContext(ctx); err != nil {
		te := classifyDialError(err)
		m.logger.Warn("smtp: handshake failed", zap.String("kind", string(te.Kind)), zap.Error(err))
		if te.Kind == KindConnection {
			return models.TransportCheckResult{
				Status:  models.TransportUnreachable,
				Message: fmt.Sprintf("SMTP connection failed: %v", err),
			}
		}
		return models.TransportCheckResult{
			Status:  models.TransportAuthFailed,
			Message: fmt.Sprintf("SMTP authentication failed: %v", err),
		}
	}
	_ = client.Close()

	return models.TransportCheckResult{
		Status:  models.TransportOK,
		Message: "SMTP connection and authentication successful",
	}
}

func (m *SMTPMailer) buildMsg(e models.EmailMessage) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.settings.Username); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", m.settings.Username, err)
	}
	if err := msg.To(e.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", e.To, err)
	}
	if e.ReplyTo != "" {
		// Replies then go to the sender; the message itself is still worth sending.
		if err := msg.ReplyTo(e.ReplyTo); err != nil {
			m.logger.Warn("smtp: dropping invalid reply-to", zap.String("replyTo", e.ReplyTo), zap.Error(err))
		}
	}
	msg.Subject(e.Subject)
	msg.SetBodyString(mail.TypeTextPlain, e.TextBody)
	msg.AddAlternativeString(mail.TypeTextHTML, e.HTMLBody)
	return msg, nil
}
