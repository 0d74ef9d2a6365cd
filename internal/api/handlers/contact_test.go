package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/turtlemeow87-design/tradscendence-site/internal/config"
	"github.com/turtlemeow87-design/tradscendence-site/internal/models"
	"github.com/turtlemeow87-design/tradscendence-site/internal/notify"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeStore struct {
	saved []*models.ContactSubmission
	err   error
}

func (f *fakeStore) SaveSubmission(_ context.Context, sub *models.ContactSubmission) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, sub)
	return nil
}

type fakeNotifier struct {
	sent []notify.Message
	err  error
}

func (f *fakeNotifier) Send(_ context.Context, m notify.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

func contactRouter(mode string, store SubmissionStore, notifier notify.Notifier) *gin.Engine {
	r := gin.New()
	h := NewContactHandler(mode, store, notifier, zap.NewNop())
	r.POST("/api/contact", h.Submit)
	return r
}

func postContact(r *gin.Engine, body, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validBody() string {
	return `{
		"name": "  Layla  ",
		"email": "Layla@Example.COM",
		"phone": "804-555-1234",
		"date": "2026-05-15",
		"location": "Richmond, VA",
		"message": "We'd love an oud set.",
		"instruments": ["Oud"],
		"genres": ["Classical"],
		"formName": "Contact Page"
	}`
}

func TestContactRejectsWrongContentType(t *testing.T) {
	store, notifier := &fakeStore{}, &fakeNotifier{}
	r := contactRouter(config.NotifyResend, store, notifier)

	w := postContact(r, "name=Layla", "application/x-www-form-urlencoded")

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	assert.Empty(t, store.saved)
	assert.Empty(t, notifier.sent)
}

func TestContactRejectsInvalidJSON(t *testing.T) {
	store, notifier := &fakeStore{}, &fakeNotifier{}
	r := contactRouter(config.NotifyResend, store, notifier)

	w := postContact(r, "{not json", "application/json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid JSON.")
	assert.Empty(t, store.saved)
	assert.Empty(t, notifier.sent)
}

func TestContactHoneypotFakeSuccess(t *testing.T) {
	store, notifier := &fakeStore{}, &fakeNotifier{}
	r := contactRouter(config.NotifyResend, store, notifier)

	w := postContact(r, `{"honeypot":"I am a bot","name":""}`, "application/json")

	// fake success: indistinguishable from the real thing, zero side effects
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	assert.Empty(t, store.saved)
	assert.Empty(t, notifier.sent)
}

func TestContactValidationErrorsNameEveryField(t *testing.T) {
	store, notifier := &fakeStore{}, &fakeNotifier{}
	r := contactRouter(config.NotifyResend, store, notifier)

	w := postContact(r, `{"name":"   ","email":"bad","location":"","message":"","date":"2026-13-40"}`, "application/json")

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error  string            `json:"error"`
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed.", resp.Error)
	assert.Equal(t, "Name is required.", resp.Errors["name"])
	assert.Equal(t, "Email looks invalid.", resp.Errors["email"])
	assert.Equal(t, "Location is required.", resp.Errors["location"])
	assert.Equal(t, "Message is required.", resp.Errors["message"])
	assert.Equal(t, "Event date must be YYYY-MM-DD format.", resp.Errors["date"])

	assert.Empty(t, store.saved)
	assert.Empty(t, notifier.sent)
}

func TestContactSuccessPersistsAndNotifies(t *testing.T) {
	store, notifier := &fakeStore{}, &fakeNotifier{}
	r := contactRouter(config.NotifyResend, store, notifier)

	w := postContact(r, validBody(), "application/json")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	require.Len(t, store.saved, 1)
	rec := store.saved[0]
	assert.Equal(t, "Layla", rec.Name)
	assert.Equal(t, "layla@example.com", rec.Email)
	assert.Equal(t, "(804) 555-1234", rec.Phone)
	require.NotNil(t, rec.EventDate)
	assert.Equal(t, "2026-05-15", *rec.EventDate)
	assert.Equal(t, "203.0.113.9", rec.IPAddress)
	assert.Equal(t, "test-agent", rec.UserAgent)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "(804) 555-1234", notifier.sent[0].Phone)
}

func TestContactPersistFailureIsSwallowed(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	notifier := &fakeNotifier{}
	r := contactRouter(config.NotifyResend, store, notifier)

	w := postContact(r, validBody(), "application/json")

	// the insert failed, but the caller still sees success and the
	// notification still goes out
	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, notifier.sent, 1)
}

func TestContactNotifyFailureIs502(t *testing.T) {
	store := &fakeStore{}
	notifier := &fakeNotifier{err: errors.New("resend down")}
	r := contactRouter(config.NotifyResend, store, notifier)

	w := postContact(r, validBody(), "application/json")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to send email notification.")
	// persistence already happened by the time notification failed
	assert.Len(t, store.saved, 1)
}

func TestContactMisconfiguredNotifier(t *testing.T) {
	r := contactRouter(config.NotifyResend, &fakeStore{}, nil)
	w := postContact(r, validBody(), "application/json")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Missing email configuration.")

	r = contactRouter(config.NotifyFormspree, nil, nil)
	w = postContact(r, validBody(), "application/json")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Missing FORMSPREE_ENDPOINT.")
}

func TestContactFormspreeErrorMessages(t *testing.T) {
	upstream := &fakeNotifier{err: notify.ErrUpstream}
	r := contactRouter(config.NotifyFormspree, nil, upstream)
	w := postContact(r, validBody(), "application/json")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Upstream form service error.")

	network := &fakeNotifier{err: errors.New("dial tcp: connection refused")}
	r = contactRouter(config.NotifyFormspree, nil, network)
	w = postContact(r, validBody(), "application/json")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Network error contacting form service.")
}

func TestContactDefaultsFormName(t *testing.T) {
	store, notifier := &fakeStore{}, &fakeNotifier{}
	r := contactRouter(config.NotifyResend, store, notifier)

	body := `{"name":"A","email":"a@b.co","location":"X","message":"hi"}`
	w := postContact(r, body, "application/json")

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.saved, 1)
	assert.Equal(t, "Contact Page", store.saved[0].FormName)
	require.Nil(t, store.saved[0].EventDate)
}
