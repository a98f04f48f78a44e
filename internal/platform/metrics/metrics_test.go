package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordChart(t *testing.T) {
	before := testutil.ToFloat64(ChartsComputedTotal.WithLabelValues(ResultUndefinedHouses))

	RecordChart(ResultUndefinedHouses, 3*time.Millisecond)

	after := testutil.ToFloat64(ChartsComputedTotal.WithLabelValues(ResultUndefinedHouses))
	assert.InDelta(t, 1.0, after-before, 1e-9)
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/chart", "422"))

	RecordHTTPRequest("POST", "/chart", 422)

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/chart", "422"))
	assert.InDelta(t, 1.0, after-before, 1e-9)
}
