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

import (
	"os"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/process"
)

// SysStats exposes process-level resource gauges (RSS, VMS, open FDs,
// CPU percent, goroutines) the same way ptp/sptp/client.SysStats samples
// them with gopsutil/process, but as a lazily-evaluated Prometheus
// Collector instead of a polled map[string]uint64.
type SysStats struct {
	rss    *prometheus.Desc
	vms    *prometheus.Desc
	numFDs *prometheus.Desc
	cpuPct *prometheus.Desc
	numGor *prometheus.Desc
}

// NewSysStats builds a SysStats collector for the calling process.
func NewSysStats() *SysStats {
	return &SysStats{
		rss:    prometheus.NewDesc("smppd_process_rss_bytes", "Resident set size.", nil, nil),
		vms:    prometheus.NewDesc("smppd_process_vms_bytes", "Virtual memory size.", nil, nil),
		numFDs: prometheus.NewDesc("smppd_process_open_fds", "Open file descriptors.", nil, nil),
		cpuPct: prometheus.NewDesc("smppd_process_cpu_percent", "CPU usage percent since the last scrape.", nil, nil),
		numGor: prometheus.NewDesc("smppd_process_goroutines", "Live goroutines.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (s *SysStats) Describe(ch chan<- *prometheus.Desc) {
	ch <- s.rss
	ch <- s.vms
	ch <- s.numFDs
	ch <- s.cpuPct
	ch <- s.numGor
}

// Collect implements prometheus.Collector. Any gopsutil call that
// fails (e.g. /proc unavailable) is skipped rather than reported,
// mirroring sysstats.go's per-field error tolerance.
func (s *SysStats) Collect(ch chan<- prometheus.Metric) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return
	}
	if mem, err := proc.MemoryInfo(); err == nil {
		ch <- prometheus.MustNewConstMetric(s.rss, prometheus.GaugeValue, float64(mem.RSS))
		ch <- prometheus.MustNewConstMetric(s.vms, prometheus.GaugeValue, float64(mem.VMS))
	}
	if fds, err := proc.NumFDs(); err == nil {
		ch <- prometheus.MustNewConstMetric(s.numFDs, prometheus.GaugeValue, float64(fds))
	}
	if pct, err := proc.Percent(0); err == nil {
		ch <- prometheus.MustNewConstMetric(s.cpuPct, prometheus.GaugeValue, pct)
	}
	ch <- prometheus.MustNewConstMetric(s.numGor, prometheus.GaugeValue, float64(runtime.NumGoroutine()))
}
