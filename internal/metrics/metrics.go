// Package metrics collects Prometheus metrics for HTTP traffic and PDF renders.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"resume-builder/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	renders        *prometheus.CounterVec
	renderLatency  prometheus.Histogram
}

// NewCollector registers the service metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resume_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "resume_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resume_pdf_renders_total",
			Help: "PDF renders by outcome.",
		}, []string{"outcome"}),
		renderLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "resume_pdf_render_duration_seconds",
			Help: "Wall time of one PDF render including browser start and teardown.",
			// browser launch dominates, so the default buckets are too fine
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		}),
	}

	reg.MustRegister(c.requests, c.requestLatency, c.renders, c.renderLatency)
	return c
}

func (c *Collector) ObserveRequest(method, route string, status int, d time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

func (c *Collector) ObserveRender(d time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	c.renders.WithLabelValues(outcome).Inc()
	c.renderLatency.Observe(d.Seconds())
}

// Renderer matches usecase.Renderer.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string, setup domain.PageSetup) ([]byte, error)
}

// InstrumentRenderer times every render made through next.
func (c *Collector) InstrumentRenderer(next Renderer) Renderer {
	return &instrumentedRenderer{next: next, c: c}
}

type instrumentedRenderer struct {
	next Renderer
	c    *Collector
}

func (r *instrumentedRenderer) RenderHTMLToPDF(ctx context.Context, html string, setup domain.PageSetup) ([]byte, error) {
	start := time.Now()
	out, err := r.next.RenderHTMLToPDF(ctx, html, setup)
	r.c.ObserveRender(time.Since(start), err)
	return out, err
}

// Handler serves the scrape endpoint for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
