package mail

import (
	"errors"
	"testing"
)

func TestSendWelcomeNotConfigured(t *testing.T) {
	tests := []struct {
		name   string
		mailer *SMTPMailer
	}{
		{name: "missing host", mailer: NewSMTPMailer("", 587, "user", "pass", "noreply@aethelgard.pt")},
		{name: "missing username", mailer: NewSMTPMailer("smtp.example.com", 587, "", "pass", "noreply@aethelgard.pt")},
		{name: "missing password", mailer: NewSMTPMailer("smtp.example.com", 587, "user", "", "noreply@aethelgard.pt")},
		{name: "missing from", mailer: NewSMTPMailer("smtp.example.com", 587, "user", "pass", "")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mailer.SendWelcome("hero@example.com", "Hero", "HERO", "secret1234")
			if !errors.Is(err, ErrNotConfigured) {
				t.Errorf("expected ErrNotConfigured, got %v", err)
			}
		})
	}
}
