package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const resendEndpoint = "https://api.resend.com/emails"

// Resend sends booking inquiries as transactional email through the
// Resend REST API.
type Resend struct {
	apiKey   string
	from     string
	to       string
	endpoint string
	client   *http.Client
}

func NewResend(apiKey, from, to string) *Resend {
	return &Resend{
		apiKey:   apiKey,
		from:     from,
		to:       to,
		endpoint: resendEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

func (r *Resend) Send(ctx context.Context, m Message) error {
	payload := resendRequest{
		From:    r.from,
		To:      []string{r.to},
		ReplyTo: m.Email,
		Subject: "🎵 SoundBeyondBorders Booking Inquiries and Questions",
		Text:    EmailBody(m),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: resend status %d", ErrUpstream, resp.StatusCode)
	}
	return nil
}
