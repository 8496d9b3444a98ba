// Package notify sends team collaboration emails over SMTP. When SMTP
// is not configured, sends are mocked and reported as such so the rest
// of the flow keeps working in local setups.
package notify

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"resume-screener/internal/shared/telemetry"
)

// SendResult reports the outcome of an email send.
type SendResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	SentAt   string `json:"sent_at,omitempty"`
	MockSent bool   `json:"mock_sent,omitempty"`
}

// Mailer sends emails via SMTP.
type Mailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string

	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailer constructs a Mailer.
func NewMailer(host, port, username, password, from string) *Mailer {
	return &Mailer{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
		send:     smtp.SendMail,
	}
}

// Configured reports whether real SMTP delivery is possible.
func (m *Mailer) Configured() bool {
	return strings.TrimSpace(m.Host) != "" && strings.TrimSpace(m.From) != ""
}

// SendTeamInvitation emails a team invitation.
func (m *Mailer) SendTeamInvitation(to, inviterName, teamName string) SendResult {
	subject := fmt.Sprintf("%s invited you to join %s", inviterName, teamName)
	body := fmt.Sprintf(
		"Hi,\r\n\r\n%s has invited you to join the team %q on Resume Screener.\r\n\r\nLog in to accept the invitation.\r\n",
		inviterName, teamName,
	)
	return m.deliver(to, subject, body)
}

// SendNotification emails a plain team notification.
func (m *Mailer) SendNotification(to, subject, message, senderName string) SendResult {
	body := fmt.Sprintf("%s\r\n\r\n-- %s\r\n", message, senderName)
	return m.deliver(to, subject, body)
}

func (m *Mailer) deliver(to, subject, body string) SendResult {
	if !m.Configured() {
		telemetry.Info("notify.mock_send", map[string]any{"to": to, "subject": subject})
		return SendResult{
			Success:  false,
			Message:  "SMTP not configured, email mocked",
			MockSent: true,
		}
	}

	msg := strings.Join([]string{
		"From: " + m.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}
	addr := m.Host + ":" + m.Port

	if err := m.send(addr, auth, m.From, []string{to}, []byte(msg)); err != nil {
		telemetry.Error("notify.send_failed", map[string]any{"to": to, "error": err.Error()})
		return SendResult{
			Success: false,
			Message: fmt.Sprintf("failed to send email: %v", err),
		}
	}

	sentAt := time.Now().UTC().Format(time.RFC3339)
	telemetry.Info("notify.sent", map[string]any{"to": to, "subject": subject})
	return SendResult{
		Success: true,
		Message: "Email sent successfully",
		SentAt:  sentAt,
	}
}
