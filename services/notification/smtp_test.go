package notification

import (
	"bufio"
	"context"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"ingcap/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSMTPServer speaks just enough SMTP for go-mail: greeting, EHLO, AUTH PLAIN,
// MAIL/RCPT/DATA and QUIT. It never offers STARTTLS.
type fakeSMTPServer struct {
	ln         net.Listener
	hangUp     bool
	rejectAuth bool

	mu         sync.Mutex
	conns      int
	messages   int
	recipients []string
}

func startFakeSMTP(t *testing.T, configure func(*fakeSMTPServer)) *fakeSMTPServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &fakeSMTPServer{ln: ln}
	if configure != nil {
		configure(s)
	}
	t.Cleanup(func() { _ = ln.Close() })
	go s.serve()
	return s
}

func (s *fakeSMTPServer) port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

func (s *fakeSMTPServer) serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.conns++
		s.mu.Unlock()
		go s.handle(conn)
	}
}

func (s *fakeSMTPServer) handle(conn net.Conn) {
	defer conn.Close()
	if s.hangUp {
		return
	}

	r := bufio.NewReader(conn)
	reply := func(line string) {
		_, _ = conn.Write([]byte(line + "\r\n"))
	}

	reply("220 localhost ESMTP ready")
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		cmd := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(cmd, "EHLO"):
			reply("250-localhost")
			reply("250 AUTH PLAIN")
		case strings.HasPrefix(cmd, "HELO"):
			reply("250 localhost")
		case strings.HasPrefix(cmd, "AUTH"):
			if s.rejectAuth {
				reply("535 5.7.8 Authentication credentials invalid")
			} else {
				reply("235 2.7.0 Authentication successful")
			}
		case strings.HasPrefix(cmd, "RCPT TO:"):
			s.mu.Lock()
			s.recipients = append(s.recipients, strings.TrimSpace(line[len("RCPT TO:"):]))
			s.mu.Unlock()
			reply("250 OK")
		case cmd == "DATA":
			reply("354 End data with <CR><LF>.<CR><LF>")
			for {
				l, err := r.ReadString('\n')
				if err != nil {
					return
				}
				if l == ".\r\n" {
					break
				}
			}
			s.mu.Lock()
			s.messages++
			s.mu.Unlock()
			reply("250 OK queued")
		case cmd == "QUIT":
			reply("221 Bye")
			return
		default:
			reply("250 OK")
		}
	}
}

func (s *fakeSMTPServer) stats() (conns, messages int, recipients []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conns, s.messages, append([]string(nil), s.recipients...)
}

func newLocalMailer(s *fakeSMTPServer, allowPlaintext bool) *SMTPMailer {
	return NewSMTPMailer(SMTPSettings{
		Host:           "127.0.0.1",
		Port:           s.port(),
		Username:       "bookings@ingcap.co.uk",
		Password:       "secret",
		Timeout:        2 * time.Second,
		AllowPlaintext: allowPlaintext,
	}, zap.NewNop())
}

func TestSMTPMailer_Check(t *testing.T) {
	tests := []struct {
		name      string
		configure func(*fakeSMTPServer)
		plaintext bool
		want      models.TransportCheck
	}{
		{
			name:      "server hangs up before greeting",
			configure: func(s *fakeSMTPServer) { s.hangUp = true },
			plaintext: true,
			want:      models.TransportUnreachable,
		},
		{
			name:      "STARTTLS required but not offered",
			plaintext: false,
			want:      models.TransportUnreachable,
		},
		{
			name:      "login rejected",
			configure: func(s *fakeSMTPServer) { s.rejectAuth = true },
			plaintext: true,
			want:      models.TransportAuthFailed,
		},
		{
			name:      "login accepted",
			plaintext: true,
			want:      models.TransportOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := startFakeSMTP(t, tt.configure)
			res := newLocalMailer(srv, tt.plaintext).Check(context.Background())
			assert.Equal(t, tt.want, res.Status, res.Message)
		})
	}
}

func TestSMTPMailer_SendDeliversBothMessages(t *testing.T) {
	srv := startFakeSMTP(t, nil)
	m := newLocalMailer(srv, true)

	err := m.Send(context.Background(),
		models.EmailMessage{To: "appointment@ingcap.co.uk", ReplyTo: "jane@example.com", Subject: "New booking", HTMLBody: "<p>new</p>", TextBody: "new"},
		models.EmailMessage{To: "jane@example.com", Subject: "Booking Confirmation", HTMLBody: "<p>thanks</p>", TextBody: "thanks"},
	)
	require.NoError(t, err)

	conns, messages, recipients := srv.stats()
	assert.Equal(t, 1, conns)
	assert.Equal(t, 2, messages)
	assert.Equal(t, []string{"<appointment@ingcap.co.uk>", "<jane@example.com>"}, recipients)
}

func TestSMTPMailer_SendMalformedClientAddressStillNotifiesBusiness(t *testing.T) {
	srv := startFakeSMTP(t, nil)
	m := newLocalMailer(srv, true)

	err := m.Send(context.Background(),
		models.EmailMessage{To: "appointment@ingcap.co.uk", ReplyTo: "jane at example", Subject: "New booking", HTMLBody: "<p>new</p>", TextBody: "new"},
		models.EmailMessage{To: "jane at example", Subject: "Booking Confirmation", HTMLBody: "<p>thanks</p>", TextBody: "thanks"},
	)
	require.Error(t, err)
	assert.Equal(t, KindAddress, KindOf(err))
	assert.Contains(t, err.Error(), "jane at example")

	_, messages, recipients := srv.stats()
	assert.Equal(t, 1, messages)
	assert.Equal(t, []string{"<appointment@ingcap.co.uk>"}, recipients)
}

func TestSMTPMailer_SendReportsRejectedLogin(t *testing.T) {
	srv := startFakeSMTP(t, func(s *fakeSMTPServer) { s.rejectAuth = true })
	m := newLocalMailer(srv, true)

	err := m.Send(context.Background(),
		models.EmailMessage{To: "appointment@ingcap.co.uk", Subject: "New booking", HTMLBody: "<p>new</p>", TextBody: "new"},
	)
	require.Error(t, err)
	assert.Equal(t, KindAuth, KindOf(err))

	_, messages, _ := srv.stats()
	assert.Zero(t, messages)
}
