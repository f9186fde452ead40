/*
 * Copyright 2019 The CovenantSQL Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package metric holds the prometheus collectors of the dispatch boundary
// and the derivation engine, and serves them over http.
package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/version"
)

const (
	namespace = "ethkey"

	// MB is 1024 * 1024 bytes.
	MB = 1 << 20
)

// Outcome labels of DispatchRequests.
const (
	OutcomeResult = "result"
	OutcomeAbsent = "absent"
	OutcomeError  = "error"
)

var (
	// Registry gathers every ethkey collector.
	Registry = prometheus.NewRegistry()

	// DispatchRequests counts routed requests by action and outcome.
	DispatchRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dispatch",
		Name:      "requests_total",
		Help:      "Dispatched requests by action and outcome.",
	}, []string{"action", "outcome"})

	// DispatchInFlight is the number of requests posted but not answered.
	DispatchInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "dispatch",
		Name:      "in_flight",
		Help:      "Requests posted to an execution context and not yet answered.",
	})

	// DispatchDuration observes routing time by action.
	DispatchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "dispatch",
		Name:      "duration_seconds",
		Help:      "Time spent routing a request.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 16),
	}, []string{"action"})

	// RPCConnections is the number of open JSON-RPC websocket connections.
	RPCConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "rpc",
		Name:      "connections",
		Help:      "Open JSON-RPC websocket connections.",
	})

	// DeriveAttempts observes the search rounds of completed derivations.
	DeriveAttempts = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "derive",
		Name:      "attempts",
		Help:      "Search rounds needed per derived wallet.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})
)

func init() {
	Registry.MustRegister(
		version.NewCollector(namespace),
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		DispatchRequests,
		DispatchInFlight,
		DispatchDuration,
		DeriveAttempts,
		RPCConnections,
	)
}

// ObserveDispatch records one routed request.
func ObserveDispatch(action, outcome string, elapsed time.Duration) {
	DispatchRequests.WithLabelValues(action, outcome).Inc()
	DispatchDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}
