package monitoring

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordBarRejected(t *testing.T) {
	before := testutil.ToFloat64(barsRejectedTotal.WithLabelValues("test"))
	RecordBarRejected("test")
	RecordBarRejected("test")
	assert.Equal(t, before+2, testutil.ToFloat64(barsRejectedTotal.WithLabelValues("test")))
}

func TestRecordBarsStoredAndLoaded(t *testing.T) {
	stored := testutil.ToFloat64(barsStoredTotal.WithLabelValues("test"))
	loaded := testutil.ToFloat64(barsLoadedTotal.WithLabelValues("test"))

	RecordBarsStored("test", 3)
	RecordBarLoaded("test")

	assert.Equal(t, stored+3, testutil.ToFloat64(barsStoredTotal.WithLabelValues("test")))
	assert.Equal(t, loaded+1, testutil.ToFloat64(barsLoadedTotal.WithLabelValues("test")))
}

func TestRecordSizing(t *testing.T) {
	before := testutil.ToFloat64(sizingCalculationsTotal.WithLabelValues("test", SizingResultZero))
	RecordSizing("test", SizingResultZero)
	assert.Equal(t, before+1, testutil.ToFloat64(sizingCalculationsTotal.WithLabelValues("test", SizingResultZero)))
}

func TestHandler(t *testing.T) {
	RecordSizing("handler", SizingResultSized)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "bartool_sizing_calculations_total"))
}
