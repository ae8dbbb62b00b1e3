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

package smppserver

import "github.com/prometheus/client_golang/prometheus"

// Metrics is the optional set of server-side counters/gauges, mirroring
// ptp4u/stats' registration shape and smppclient.Metrics' nil-safety.
type Metrics struct {
	Connections   prometheus.Gauge
	Binds         *prometheus.CounterVec
	BindFailures  prometheus.Counter
	SessionEnds   *prometheus.CounterVec
	PDUsReceived  *prometheus.CounterVec
}

// NewMetrics registers the server's metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "smppd_connections",
			Help: "Currently open ESME connections.",
		}),
		Binds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "smppd_binds_total",
			Help: "Successful binds by mode.",
		}, []string{"mode"}),
		BindFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smppd_bind_failures_total",
			Help: "Rejected bind attempts.",
		}),
		SessionEnds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "smppd_session_ends_total",
			Help: "Session endings by reason.",
		}, []string{"reason"}),
		PDUsReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "smppd_pdus_received_total",
			Help: "PDUs received from ESMEs by command name.",
		}, []string{"command"}),
	}
	reg.MustRegister(m.Connections, m.Binds, m.BindFailures, m.SessionEnds, m.PDUsReceived)
	return m
}

func (m *Metrics) connOpen() {
	if m == nil {
		return
	}
	m.Connections.Inc()
}

func (m *Metrics) connClosed() {
	if m == nil {
		return
	}
	m.Connections.Dec()
}

func (m *Metrics) bind(mode string) {
	if m == nil {
		return
	}
	m.Binds.WithLabelValues(mode).Inc()
}

func (m *Metrics) bindFailure() {
	if m == nil {
		return
	}
	m.BindFailures.Inc()
}

func (m *Metrics) sessionEnd(reason string) {
	if m == nil {
		return
	}
	m.SessionEnds.WithLabelValues(reason).Inc()
}

func (m *Metrics) received(command string) {
	if m == nil {
		return
	}
	m.PDUsReceived.WithLabelValues(command).Inc()
}
