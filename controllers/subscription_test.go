package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"commontable-alerts/metrics"
	"commontable-alerts/models"
)

type fakeRegistry struct {
	upserted   map[string]models.SubscriberPrefs
	removed    []string
	upsertErr  error
	count      int64
	countErr   error
	listPhones []string
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{upserted: map[string]models.SubscriberPrefs{}}
}

func (f *fakeRegistry) Upsert(phone string, prefs models.SubscriberPrefs) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted[phone] = prefs
	return nil
}
func (f *fakeRegistry) Remove(phone string) error {
	f.removed = append(f.removed, phone)
	return nil
}
func (f *fakeRegistry) ListActiveForDailyDigest() ([]string, error) { return f.listPhones, nil }
func (f *fakeRegistry) Count() (int64, error)                       { return f.count, f.countErr }

type fakeSender struct {
	ok   bool
	sent []string
}

func (f *fakeSender) Send(to, body string) bool {
	f.sent = append(f.sent, to)
	return f.ok
}

func newSubscriptionRouter(registry *fakeRegistry, sender *fakeSender) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctl := NewSubscriptionController(registry, sender, metrics.New(prometheus.NewRegistry()), zap.NewNop())
	r := gin.New()
	r.POST("/api/subscribe", ctl.Subscribe)
	r.POST("/api/unsubscribe", ctl.Unsubscribe)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubscribeNormalizesAndStoresPhone(t *testing.T) {
	registry := newFakeRegistry()
	sender := &fakeSender{ok: true}
	r := newSubscriptionRouter(registry, sender)

	w := postJSON(r, "/api/subscribe", `{"phone":"(651) 555-1234","surplus_drops":true}`)

	require.Equal(t, http.StatusOK, w.Code)
	prefs, found := registry.upserted["+16515551234"]
	require.True(t, found)
	require.NotNil(t, prefs.SurplusDrops)
	assert.True(t, *prefs.SurplusDrops)
	assert.Nil(t, prefs.DailyDigest, "unsupplied prefs pass through as nil")

	assert.Equal(t, []string{"+16515551234"}, sender.sent, "welcome SMS attempted")

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["ok"])
	assert.Equal(t, "Subscribed. Check your phone for confirmation.", resp["message"])
}

func TestSubscribeWelcomeFailureStillSucceeds(t *testing.T) {
	registry := newFakeRegistry()
	r := newSubscriptionRouter(registry, &fakeSender{ok: false})

	w := postJSON(r, "/api/subscribe", `{"phone":"6515551234"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, registry.upserted, "+16515551234")

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Subscribed. (SMS not sent—check server Twilio config.)", resp["message"])
}

func TestSubscribeInvalidPhone(t *testing.T) {
	registry := newFakeRegistry()
	r := newSubscriptionRouter(registry, &fakeSender{ok: true})

	w := postJSON(r, "/api/subscribe", `{"phone":"555"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, registry.upserted)
}

func TestSubscribeMissingPhone(t *testing.T) {
	r := newSubscriptionRouter(newFakeRegistry(), &fakeSender{ok: true})
	w := postJSON(r, "/api/subscribe", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscribeRegistryFailure(t *testing.T) {
	registry := newFakeRegistry()
	registry.upsertErr = errors.New("db down")
	sender := &fakeSender{ok: true}
	r := newSubscriptionRouter(registry, sender)

	w := postJSON(r, "/api/subscribe", `{"phone":"6515551234"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, sender.sent, "no welcome SMS when the upsert fails")
}

func TestUnsubscribe(t *testing.T) {
	registry := newFakeRegistry()
	r := newSubscriptionRouter(registry, &fakeSender{ok: true})

	w := postJSON(r, "/api/unsubscribe", `{"phone":"16515551234"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"+16515551234"}, registry.removed)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Unsubscribed.", resp["message"])
}

func TestUnsubscribeInvalidPhone(t *testing.T) {
	registry := newFakeRegistry()
	r := newSubscriptionRouter(registry, &fakeSender{ok: true})

	w := postJSON(r, "/api/unsubscribe", `{"phone":"not a number"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, registry.removed)
}
