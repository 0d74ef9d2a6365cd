// Package notify delivers a validated booking inquiry to a human, either
// as a transactional email (Resend) or via a form relay (Formspree).
package notify

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrUpstream marks a non-2xx answer from the delivery provider, as
// opposed to a transport-level failure.
var ErrUpstream = errors.New("upstream provider rejected the message")

// Message is everything a recipient needs to act on an inquiry. All
// fields are already normalized.
type Message struct {
	Name        string
	Email       string
	Phone       string // formatted, may be empty
	Date        string // YYYY-MM-DD, may be empty
	Location    string
	Instruments []string
	Genres      []string
	GenreOther  string
	Message     string
	FormName    string
	IPAddress   string
	UserAgent   string
	SubmittedAt time.Time
}

// Notifier sends one message. Implementations do a single blocking HTTP
// call with no retry.
type Notifier interface {
	Send(ctx context.Context, m Message) error
}

func listOrDefault(items []string) string {
	if len(items) == 0 {
		return "Not specified"
	}
	return strings.Join(items, ", ")
}

const rule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// EmailBody renders the plain-text message for direct email delivery.
func EmailBody(m Message) string {
	lines := []string{
		"New Inquiry from " + m.Name,
		"",
		rule,
		"",
		"📧 Email: " + m.Email,
	}
	if m.Phone != "" {
		lines = append(lines, "📱 Phone: "+m.Phone)
	}
	if m.Date != "" {
		lines = append(lines, "📅 Event Date: "+m.Date)
	}
	lines = append(lines,
		"📍 Location: "+m.Location,
		"",
		"🎵 Instruments: "+listOrDefault(m.Instruments),
		"🎶 Genres: "+listOrDefault(m.Genres),
	)
	if m.GenreOther != "" {
		lines = append(lines, "🎨 Custom Genre: "+m.GenreOther)
	}
	lines = append(lines,
		"",
		rule,
		"",
		"Message:",
		m.Message,
		"",
		rule,
		"",
		"Submitted from: "+m.FormName,
		"IP: "+m.IPAddress,
		"Timestamp: "+m.SubmittedAt.UTC().Format(time.RFC3339),
	)
	return strings.Join(lines, "\n")
}

// RelayBody renders the line-per-field message handed to the form relay.
func RelayBody(m Message) string {
	lines := []string{
		"Name: " + m.Name,
		"Email: " + m.Email,
	}
	if m.Phone != "" {
		lines = append(lines, "Phone: "+m.Phone)
	}
	if m.Date != "" {
		lines = append(lines, "Event Date: "+m.Date)
	}
	lines = append(lines,
		"Location: "+m.Location,
		"Instruments: "+listOrDefault(m.Instruments),
		"Genres: "+listOrDefault(m.Genres),
	)
	if m.GenreOther != "" {
		lines = append(lines, "Custom Genre(s): "+m.GenreOther)
	}
	lines = append(lines,
		"",
		"Message:",
		m.Message,
		"",
		"Form: "+m.FormName,
	)
	return strings.Join(lines, "\n")
}
