package config

import "strings"

// NotificationMode says whether outbound email is configured for this process.
type NotificationMode int

const (
	NotificationsDisabled NotificationMode = iota
	NotificationsEnabled
)

func (m NotificationMode) String() string {
	if m == NotificationsEnabled {
		return "enabled"
	}
	return "disabled"
}

// placeholderCredentials are values shipped in sample env files. A credential equal to
// one of them counts as absent.
var placeholderCredentials = []string{
	"your-email@gmail.com",
	"your-app-password",
	"placeholder",
	"changeme",
	"test",
}

// Notifications is evaluated once at startup and injected into the booking workflow.
func (c *Config) Notifications() NotificationMode {
	if isUnset(c.SMTPUser) || isUnset(c.SMTPPassword) || strings.TrimSpace(c.SMTPServer) == "" {
		return NotificationsDisabled
	}
	return NotificationsEnabled
}

func isUnset(credential string) bool {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return true
	}
	for _, p := range placeholderCredentials {
		if strings.EqualFold(credential, p) {
			return true
		}
	}
	return false
}
