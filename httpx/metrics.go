/*
   Copyright 2025 The DIRPX Authors

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

package httpx

import (
	"time"

	"dirpx.dev/callable/code"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects per-function call counts and latencies. A nil *Metrics
// records nothing.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	if namespace == "" {
		namespace = "callable"
	}
	m := &Metrics{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "client",
				Name:      "calls_total",
				Help:      "Total number of callable function invocations by outcome code",
			},
			[]string{"function", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "client",
				Name:      "call_duration_seconds",
				Help:      "Time taken by callable function invocations",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 15), // 5ms to ~80s
			},
			[]string{"function"},
		),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.calls, m.duration} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *Metrics) observe(fn string, c code.Code, d time.Duration) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(fn, string(c)).Inc()
	m.duration.WithLabelValues(fn).Observe(d.Seconds())
}
