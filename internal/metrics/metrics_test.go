package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequest("login", OutcomeOK, 10*time.Millisecond)
	c.RecordRequest("login", OutcomeOK, 20*time.Millisecond)
	c.RecordRequest("list_subscriptions", OutcomeTransport, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.requests.WithLabelValues("login", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("list_subscriptions", OutcomeTransport)))
	assert.Equal(t, 2, testutil.CollectAndCount(c.latency))
}

func TestCollector_RecordHTTPStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus("create_subscription", 201)
	c.RecordHTTPStatus("create_subscription", 422)
	c.RecordHTTPStatus("create_subscription", 422)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpStatus.WithLabelValues("create_subscription", "201")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.httpStatus.WithLabelValues("create_subscription", "422")))
}

func TestNewCollector_DoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)
	assert.Panics(t, func() { NewCollector(reg) })
}

func TestMux_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordRequest("register", OutcomeServerError, time.Millisecond)

	srv := httptest.NewServer(Mux(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `udlm_client_requests_total{op="register",outcome="server_error"} 1`)
}

func TestNop(t *testing.T) {
	r := Nop()
	r.RecordRequest("x", OutcomeOK, 0)
	r.RecordHTTPStatus("x", 200)
}
