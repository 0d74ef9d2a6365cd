package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMessage() Message {
	return Message{
		Name:        "Layla",
		Email:       "layla@example.com",
		Phone:       "(804) 555-1234",
		Date:        "2026-05-15",
		Location:    "Richmond, VA",
		Instruments: []string{"Oud", "Santur"},
		Genres:      []string{"Classical"},
		GenreOther:  "Maqam improvisation",
		Message:     "Looking for a duo for a spring wedding.",
		FormName:    "Contact Page",
		IPAddress:   "203.0.113.9",
		UserAgent:   "test-agent",
		SubmittedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestEmailBody(t *testing.T) {
	body := EmailBody(sampleMessage())

	assert.Contains(t, body, "New Inquiry from Layla")
	assert.Contains(t, body, "📧 Email: layla@example.com")
	assert.Contains(t, body, "📱 Phone: (804) 555-1234")
	assert.Contains(t, body, "📅 Event Date: 2026-05-15")
	assert.Contains(t, body, "🎵 Instruments: Oud, Santur")
	assert.Contains(t, body, "🎨 Custom Genre: Maqam improvisation")
	assert.Contains(t, body, "IP: 203.0.113.9")
	assert.Contains(t, body, "Timestamp: 2026-03-01T12:00:00Z")
}

func TestEmailBodyOmitsEmptyOptionals(t *testing.T) {
	m := sampleMessage()
	m.Phone = ""
	m.Date = ""
	m.GenreOther = ""
	m.Instruments = nil

	body := EmailBody(m)
	assert.NotContains(t, body, "📱 Phone:")
	assert.NotContains(t, body, "📅 Event Date:")
	assert.NotContains(t, body, "🎨 Custom Genre:")
	assert.Contains(t, body, "🎵 Instruments: Not specified")
}

func TestRelayBody(t *testing.T) {
	body := RelayBody(sampleMessage())

	assert.Contains(t, body, "Name: Layla")
	assert.Contains(t, body, "Phone: (804) 555-1234")
	assert.Contains(t, body, "Custom Genre(s): Maqam improvisation")
	assert.Contains(t, body, "Form: Contact Page")

	m := sampleMessage()
	m.Phone = ""
	assert.NotContains(t, RelayBody(m), "Phone:")
}

func TestResendSend(t *testing.T) {
	var got resendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer re_test_key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewResend("re_test_key", "Booking <bookings@example.com>", "owner@example.com")
	n.endpoint = srv.URL

	require.NoError(t, n.Send(context.Background(), sampleMessage()))
	assert.Equal(t, "Booking <bookings@example.com>", got.From)
	assert.Equal(t, []string{"owner@example.com"}, got.To)
	assert.Equal(t, "layla@example.com", got.ReplyTo)
	assert.Contains(t, got.Text, "New Inquiry from Layla")
}

func TestResendSendUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	n := NewResend("bad_key", "from", "to")
	n.endpoint = srv.URL

	err := n.Send(context.Background(), sampleMessage())
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestFormspreeSend(t *testing.T) {
	var got formspreeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewFormspree(srv.URL)
	require.NoError(t, n.Send(context.Background(), sampleMessage()))

	assert.Equal(t, "Layla", got.Name)
	assert.Equal(t, "Booking Request from Layla", got.Subject)
	assert.Contains(t, got.Message, "Location: Richmond, VA")
}

func TestFormspreeSendErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	n := NewFormspree(srv.URL)
	assert.ErrorIs(t, n.Send(context.Background(), sampleMessage()), ErrUpstream)
	srv.Close()

	// server gone: transport error, not ErrUpstream
	err := n.Send(context.Background(), sampleMessage())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUpstream)
}
