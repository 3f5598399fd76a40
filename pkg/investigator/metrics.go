// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package investigator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the counters and timings of investigator runs.
type Metrics struct {
	registry *prometheus.Registry

	runDuration   prometheus.Histogram
	runTotal      *prometheus.CounterVec
	phaseDuration *prometheus.HistogramVec
	devices       prometheus.Gauge
	mounts        *prometheus.CounterVec
	artifacts     *prometheus.CounterVec
	hits          prometheus.Gauge
	objects       *prometheus.CounterVec
}

// NewMetrics registers the investigator metrics in a new private registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		runDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "investigator_run_duration_seconds",
			Help:    "Time taken by a complete investigator run",
			Buckets: []float64{1, 5, 10, 30, 60, 300, 900},
		}),
		runTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "investigator_run_total",
			Help: "Total number of investigator runs",
		}, []string{"status"}), // success or error
		phaseDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "investigator_phase_duration_seconds",
			Help:    "Time taken by individual pipeline phases",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 30, 120},
		}, []string{"phase"}), // scan, mount, locate, collect, publish
		devices: f.NewGauge(prometheus.GaugeOpts{
			Name: "investigator_devices",
			Help: "Number of candidate devices found in the last run",
		}),
		mounts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "investigator_mounts_total",
			Help: "Mount outcomes by action",
		}, []string{"action"}),
		artifacts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "investigator_artifacts_total",
			Help: "Staged artifacts by category and status",
		}, []string{"category", "status"}),
		hits: f.NewGauge(prometheus.GaugeOpts{
			Name: "investigator_error_hits",
			Help: "Fatal-error signature hits in the last scanned log",
		}),
		objects: f.NewCounterVec(prometheus.CounterOpts{
			Name: "investigator_objects_total",
			Help: "Published objects by result",
		}, []string{"result"}), // uploaded or existing
	}
}

// Gatherer exposes the private registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes all metrics to path in text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
