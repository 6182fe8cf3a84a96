package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/leaves", "200"))

	ObserveHTTPRequest(http.MethodGet, "/api/leaves", http.StatusOK, 20*time.Millisecond)

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/leaves", "200"))
	assert.Equal(t, before+1, after)
}

func TestObserveLeaveDecision(t *testing.T) {
	before := testutil.ToFloat64(LeaveDecisionsTotal.WithLabelValues("approved"))

	ObserveLeaveDecision("approved")
	ObserveLeaveDecision("approved")

	assert.Equal(t, before+2, testutil.ToFloat64(LeaveDecisionsTotal.WithLabelValues("approved")))
}
