/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package smppclient

import (
	"sync"
	"time"

	"github.com/eclesh/welford"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/smpp-go/smpp/pdu"
)

// Metrics is an optional set of counters/gauges a Client publishes.
// A nil *Metrics (the zero value from Config) disables all of it, so the
// client stays usable as a pure library with no global registry side
// effects.
type Metrics struct {
	PDUsSent      *prometheus.CounterVec
	PDUsReceived  *prometheus.CounterVec
	Pending       prometheus.Gauge
	Timeouts      prometheus.Counter
	Unbinds       prometheus.Counter
	LatencyMeanMs prometheus.Gauge
	LatencyStdDev prometheus.Gauge

	latencyMu sync.Mutex
	latency   *welford.Stats
}

// NewMetrics builds a Metrics set and registers it with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PDUsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "smppclient_pdus_sent_total",
			Help: "PDUs written to the wire, by command_id name.",
		}, []string{"command"}),
		PDUsReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "smppclient_pdus_received_total",
			Help: "PDUs read from the wire, by command_id name.",
		}, []string{"command"}),
		Pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "smppclient_pending_requests",
			Help: "Submissions awaiting a response.",
		}),
		Timeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smppclient_request_timeouts_total",
			Help: "Submissions that hit response_timeout.",
		}),
		Unbinds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smppclient_unbinds_total",
			Help: "Graceful unbinds completed.",
		}),
		LatencyMeanMs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "smppclient_response_latency_mean_ms",
			Help: "Running mean of request/response round-trip latency.",
		}),
		LatencyStdDev: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "smppclient_response_latency_stddev_ms",
			Help: "Running standard deviation of request/response round-trip latency.",
		}),
		latency: welford.New(),
	}
	reg.MustRegister(m.PDUsSent, m.PDUsReceived, m.Pending, m.Timeouts, m.Unbinds,
		m.LatencyMeanMs, m.LatencyStdDev)
	return m
}

// observeLatency folds one round-trip duration into the running
// mean/stddev, the same online-update technique ptp/c4u/clock uses for
// offset statistics.
func (m *Metrics) observeLatency(d time.Duration) {
	if m == nil {
		return
	}
	m.latencyMu.Lock()
	m.latency.Add(float64(d.Milliseconds()))
	mean, stddev := m.latency.Mean(), m.latency.Stddev()
	m.latencyMu.Unlock()
	m.LatencyMeanMs.Set(mean)
	m.LatencyStdDev.Set(stddev)
}

func (m *Metrics) sent(id pdu.ID) {
	if m == nil {
		return
	}
	m.PDUsSent.WithLabelValues(id.String()).Inc()
}

func (m *Metrics) received(id pdu.ID) {
	if m == nil {
		return
	}
	m.PDUsReceived.WithLabelValues(id.String()).Inc()
}

func (m *Metrics) pendingSet(n int) {
	if m == nil {
		return
	}
	m.Pending.Set(float64(n))
}

func (m *Metrics) timeout() {
	if m == nil {
		return
	}
	m.Timeouts.Inc()
}

func (m *Metrics) unbind() {
	if m == nil {
		return
	}
	m.Unbinds.Inc()
}
