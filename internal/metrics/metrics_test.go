package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resume-builder/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct{ err error }

func (s stubRenderer) RenderHTMLToPDF(context.Context, string, domain.PageSetup) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-"), nil
}

func TestObserveRequest(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.ObserveRequest("GET", "/health", 200, 5*time.Millisecond)
	c.ObserveRequest("GET", "/health", 200, 5*time.Millisecond)
	c.ObserveRequest("POST", "/convert", 500, time.Second)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.requests.WithLabelValues("GET", "/health", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.requests.WithLabelValues("POST", "/convert", "500")))
}

func TestInstrumentRenderer(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())
	ctx := context.Background()

	ok := c.InstrumentRenderer(stubRenderer{})
	out, err := ok.RenderHTMLToPDF(ctx, "<p>x</p>", domain.PageSetup{})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-"), out)

	boom := errors.New("chrome crashed")
	failing := c.InstrumentRenderer(stubRenderer{err: boom})
	_, err = failing.RenderHTMLToPDF(ctx, "<p>x</p>", domain.PageSetup{})
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, float64(1), testutil.ToFloat64(c.renders.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.renders.WithLabelValues("failure")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.renderLatency))
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.ObserveRender(time.Second, nil)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `resume_pdf_renders_total{outcome="success"} 1`), body)
	assert.Contains(t, body, "resume_pdf_render_duration_seconds_bucket")
}
