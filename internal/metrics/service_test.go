package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)

	s.IncTicks()
	s.IncMinutesAdvanced()
	s.IncMinutesAdvanced()
	s.IncOperatorAction("go-live")
	s.IncOperatorActionFailed("finish")
	s.IncPollRuns("list")

	assert.Equal(t, 1.0, testutil.ToFloat64(s.Ticks))
	assert.Equal(t, 2.0, testutil.ToFloat64(s.MinutesAdvanced))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.OperatorActions.WithLabelValues("go-live")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.OperatorActionsFailed.WithLabelValues("finish")))
	assert.Equal(t, 0.0, testutil.ToFloat64(s.PollRuns.WithLabelValues("detail")))
}

func TestMetricsHandlerExposesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)
	s.IncTicks()

	rr := httptest.NewRecorder()
	NewMetricsHandler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "matchday_clock_ticks_total 1")
}
