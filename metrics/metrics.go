// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package metrics

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	jujuhttp "github.com/juju/http/v2"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "juju_cdn"

// Collector is a prometheus.Collector that collects metrics about calls
// made to the CDN management API.
type Collector struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	authentications *prometheus.CounterVec
}

// NewCollector returns a new Collector.
func NewCollector() *Collector {
	return &Collector{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "requests_total",
				Help:      "The number of CDN management requests by method and status code.",
			}, []string{"method", "code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "request_duration_seconds",
				Help:      "The time taken by CDN management requests.",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			}, []string{"method"},
		),
		authentications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "authentications_total",
				Help:      "The number of authentication exchanges by protocol.",
			}, []string{"protocol"},
		),
	}
}

var _ jujuhttp.RequestRecorder = (*Collector)(nil)

// Record an outgoing request which produced an http.Response.
func (c *Collector) Record(method string, _ *url.URL, res *http.Response, rtt time.Duration) {
	if c == nil {
		return
	}
	c.requests.WithLabelValues(method, strconv.Itoa(res.StatusCode)).Inc()
	c.requestDuration.WithLabelValues(method).Observe(rtt.Seconds())
}

// RecordError records an outgoing request which returned an error. The
// request is counted under the "error" code.
func (c *Collector) RecordError(method string, _ *url.URL, _ error) {
	if c == nil {
		return
	}
	c.requests.WithLabelValues(method, "error").Inc()
}

// ObserveAuthentication records one authentication exchange.
func (c *Collector) ObserveAuthentication(protocol string) {
	if c == nil {
		return
	}
	c.authentications.WithLabelValues(protocol).Inc()
}

// Describe is part of the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.requests.Describe(ch)
	c.requestDuration.Describe(ch)
	c.authentications.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.requests.Collect(ch)
	c.requestDuration.Collect(ch)
	c.authentications.Collect(ch)
}
