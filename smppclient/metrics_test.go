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
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}

func TestMetricsObserveLatency(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.observeLatency(10 * time.Millisecond)
	m.observeLatency(20 * time.Millisecond)

	require.InDelta(t, 15, gaugeValue(t, m.LatencyMeanMs), 0.001)
	require.Greater(t, gaugeValue(t, m.LatencyStdDev), 0.0)
}

func TestMetricsObserveLatencyNilSafe(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() { m.observeLatency(5 * time.Millisecond) })
}
