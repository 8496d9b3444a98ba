package notify

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"
)

func TestMockSendWhenUnconfigured(t *testing.T) {
	m := NewMailer("", "", "", "", "")

	result := m.SendTeamInvitation("hr@example.com", "Alice", "Screening Team")
	if result.Success {
		t.Fatalf("expected mock send to report success=false")
	}
	if !result.MockSent {
		t.Fatalf("expected mock_sent=true")
	}
	if result.SentAt != "" {
		t.Fatalf("expected no sent_at for mock send")
	}
}

func TestSendTeamInvitationBuildsMessage(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg string

	m := NewMailer("smtp.example.com", "587", "user", "pass", "noreply@example.com")
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr = addr
		gotFrom = from
		gotTo = to
		gotMsg = string(msg)
		return nil
	}

	result := m.SendTeamInvitation("hr@example.com", "Alice", "Screening Team")
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.SentAt == "" {
		t.Fatalf("expected sent_at timestamp")
	}
	if gotAddr != "smtp.example.com:587" {
		t.Fatalf("unexpected addr: %q", gotAddr)
	}
	if gotFrom != "noreply@example.com" {
		t.Fatalf("unexpected from: %q", gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "hr@example.com" {
		t.Fatalf("unexpected to: %v", gotTo)
	}
	if !strings.Contains(gotMsg, "Subject: Alice invited you to join Screening Team") {
		t.Fatalf("unexpected subject in message: %q", gotMsg)
	}
	if !strings.Contains(gotMsg, "Alice has invited you") {
		t.Fatalf("unexpected body in message: %q", gotMsg)
	}
}

func TestSendNotificationReportsFailure(t *testing.T) {
	m := NewMailer("smtp.example.com", "587", "", "", "noreply@example.com")
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		return errors.New("connection refused")
	}

	result := m.SendNotification("hr@example.com", "Update", "New candidate uploaded", "Bob")
	if result.Success {
		t.Fatalf("expected failure result")
	}
	if !strings.Contains(result.Message, "connection refused") {
		t.Fatalf("expected error detail in message: %q", result.Message)
	}
	if result.MockSent {
		t.Fatalf("real send failure should not be marked mock")
	}
}
