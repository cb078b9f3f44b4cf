package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordProcedure(t *testing.T) {
	before := testutil.ToFloat64(procedureCalls.WithLabelValues("categories.list", "ok"))
	RecordProcedure("categories.list", "ok", 0)
	after := testutil.ToFloat64(procedureCalls.WithLabelValues("categories.list", "ok"))
	assert.Equal(t, before+1, after)
}

func TestHandlerExposesCollectors(t *testing.T) {
	RecordOrderPlaced(true)
	RecordProcedure("orders.create", "ok", 5*time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "restaurant_orders_placed_total"))
	assert.True(t, strings.Contains(body, `restaurant_rpc_calls_total{procedure="orders.create",status="ok"}`))
}
