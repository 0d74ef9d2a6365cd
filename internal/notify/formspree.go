package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Formspree forwards booking inquiries to a third-party form relay which
// handles delivery to the recipient.
type Formspree struct {
	endpoint string
	client   *http.Client
}

func NewFormspree(endpoint string) *Formspree {
	return &Formspree{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type formspreeRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Subject string `json:"_subject"`
}

func (f *Formspree) Send(ctx context.Context, m Message) error {
	payload := formspreeRequest{
		Name:    m.Name,
		Email:   m.Email,
		Message: RelayBody(m),
		Subject: "Booking Request from " + m.Name,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: formspree status %d", ErrUpstream, resp.StatusCode)
	}
	return nil
}
