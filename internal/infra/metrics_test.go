package infra

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()
	m.ObserveProviderCall("amap", "/v3/place/text", "ok")
	m.ObserveProviderCall("amap", "/v3/place/text", "ok")
	m.ObserveIntent("rule", "new_plan")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.providerCalls.WithLabelValues("amap", "/v3/place/text", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.intentDecision.WithLabelValues("rule", "new_plan")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tripcopilot_intent_classifications_total")
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveProviderCall("amap", "x", "ok")
	m.ObserveIntent("llm", "chat")
}
