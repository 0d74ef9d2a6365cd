package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/turtlemeow87-design/tradscendence-site/internal/config"
	"github.com/turtlemeow87-design/tradscendence-site/internal/contact"
	"github.com/turtlemeow87-design/tradscendence-site/internal/metrics"
	"github.com/turtlemeow87-design/tradscendence-site/internal/models"
	"github.com/turtlemeow87-design/tradscendence-site/internal/notify"
)

// SubmissionStore appends one validated contact submission.
type SubmissionStore interface {
	SaveSubmission(ctx context.Context, sub *models.ContactSubmission) error
}

// ContactHandler runs the booking form pipeline: parse, honeypot,
// normalize, validate, then persist and notify.
type ContactHandler struct {
	mode     string
	store    SubmissionStore // nil in relay mode: the relay is the only side effect
	notifier notify.Notifier // nil when the deployment is missing its secrets
	validate *validator.Validate
	log      *zap.Logger
}

func NewContactHandler(mode string, store SubmissionStore, notifier notify.Notifier, log *zap.Logger) *ContactHandler {
	return &ContactHandler{
		mode:     mode,
		store:    store,
		notifier: notifier,
		validate: contact.NewValidator(),
		log:      log,
	}
}

// contactPayload is the raw, untrusted request body.
type contactPayload struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Date        string   `json:"date"`
	Location    string   `json:"location"`
	Message     string   `json:"message"`
	Instruments []string `json:"instruments"`
	Genres      []string `json:"genres"`
	GenreOther  string   `json:"genre_other"`
	FormName    string   `json:"formName"`
	Honeypot    string   `json:"honeypot"`
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(c *gin.Context) {
	metrics.SubmissionsReceived.Inc()

	if !strings.Contains(c.ContentType(), "application/json") {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "Unsupported Media Type. Send application/json."})
		return
	}

	var payload contactPayload
	if err := json.NewDecoder(c.Request.Body).Decode(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON."})
		return
	}

	// Honeypot: a filled hidden field means a bot. Answer with a fake
	// success so automated senders never learn they were caught.
	if strings.TrimSpace(payload.Honeypot) != "" {
		metrics.SubmissionsSpam.Inc()
		h.log.Info("honeypot triggered", zap.String("ip", clientAddress(c)))
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	sub := normalizePayload(payload)

	if errs := contact.Validate(h.validate, sub); len(errs) > 0 {
		metrics.SubmissionsInvalid.Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed.", "errors": errs})
		return
	}
	metrics.SubmissionsAccepted.Inc()

	formattedPhone := ""
	if sub.Phone != "" {
		formattedPhone = contact.FormatPhone(sub.Phone)
	}

	msg := notify.Message{
		Name:        sub.Name,
		Email:       sub.Email,
		Phone:       formattedPhone,
		Date:        sub.Date,
		Location:    sub.Location,
		Instruments: sub.Instruments,
		Genres:      sub.Genres,
		GenreOther:  sub.GenreOther,
		Message:     sub.Message,
		FormName:    sub.FormName,
		IPAddress:   clientAddress(c),
		UserAgent:   userAgent(c),
		SubmittedAt: time.Now(),
	}

	// Persistence is best-effort: a failed insert is logged and the
	// request carries on to notification.
	if h.store != nil {
		record := submissionRecord(sub, formattedPhone, msg.IPAddress, msg.UserAgent)
		if err := h.store.SaveSubmission(c.Request.Context(), record); err != nil {
			metrics.PersistFailures.Inc()
			h.log.Error("failed to persist submission", zap.Error(err), zap.String("email", sub.Email))
		}
	}

	if h.notifier == nil {
		h.log.Error("notification gateway not configured", zap.String("mode", h.mode))
		c.JSON(http.StatusInternalServerError, gin.H{"error": misconfigMessage(h.mode)})
		return
	}

	if err := h.notifier.Send(c.Request.Context(), msg); err != nil {
		metrics.NotifyFailures.WithLabelValues(h.mode).Inc()
		h.log.Error("notification failed", zap.Error(err), zap.String("mode", h.mode))
		c.JSON(http.StatusBadGateway, gin.H{"error": notifyFailureMessage(h.mode, err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func normalizePayload(p contactPayload) contact.Submission {
	formName := strings.TrimSpace(p.FormName)
	if formName == "" {
		formName = "Contact Page"
	}
	return contact.Submission{
		Name:        contact.ClampTrim(p.Name, contact.MaxName),
		Email:       contact.NormalizeEmail(p.Email),
		Phone:       contact.ClampTrim(p.Phone, contact.MaxPhone),
		Date:        strings.TrimSpace(p.Date),
		Location:    contact.ClampTrim(p.Location, contact.MaxLocation),
		Message:     contact.ClampTrim(p.Message, contact.MaxMessage),
		Instruments: p.Instruments,
		Genres:      p.Genres,
		GenreOther:  contact.ClampTrim(p.GenreOther, contact.MaxCustomText),
		FormName:    formName,
	}
}

func submissionRecord(sub contact.Submission, formattedPhone, ip, ua string) *models.ContactSubmission {
	var eventDate *string
	if sub.Date != "" {
		d := sub.Date
		eventDate = &d
	}
	return &models.ContactSubmission{
		Name:        sub.Name,
		Email:       sub.Email,
		Phone:       formattedPhone,
		EventDate:   eventDate,
		Location:    sub.Location,
		Instruments: models.StringList(sub.Instruments),
		Genres:      models.StringList(sub.Genres),
		GenreOther:  sub.GenreOther,
		Message:     sub.Message,
		FormName:    sub.FormName,
		IPAddress:   ip,
		UserAgent:   ua,
	}
}

func clientAddress(c *gin.Context) string {
	if ip := c.GetHeader("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}
	return "unknown"
}

func userAgent(c *gin.Context) string {
	if ua := c.GetHeader("User-Agent"); ua != "" {
		return ua
	}
	return "unknown"
}

func misconfigMessage(mode string) string {
	if mode == config.NotifyFormspree {
		return "Server misconfigured. Missing FORMSPREE_ENDPOINT."
	}
	return "Server misconfigured. Missing email configuration."
}

func notifyFailureMessage(mode string, err error) string {
	if mode == config.NotifyFormspree {
		if errors.Is(err, notify.ErrUpstream) {
			return "Upstream form service error."
		}
		return "Network error contacting form service."
	}
	return "Failed to send email notification."
}
