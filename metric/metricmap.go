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

package metric

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/CovenantSQL/ethkey/utils/log"
)

// SimpleMetricMap is map from metric name to MetricFamily.
type SimpleMetricMap map[string]*dto.MetricFamily

// Gather collects g into a SimpleMetricMap.
func Gather(g prometheus.Gatherer) (mm SimpleMetricMap, err error) {
	mfs, err := g.Gather()
	if err != nil {
		return nil, errors.Wrap(err, "gathering metrics failed")
	}
	mm = make(SimpleMetricMap, len(mfs))
	for _, mf := range mfs {
		mm[mf.GetName()] = mf
	}
	return
}

// FilterCrucialMetrics picks the metrics shown on the expvar page, summing
// over labels. Histograms report their mean.
func (mfm SimpleMetricMap) FilterCrucialMetrics() (ret map[string]float64) {
	crucialMetricNameMap := map[string]string{
		"ethkey_dispatch_requests_total":   "requests",
		"ethkey_dispatch_in_flight":        "in_flight",
		"ethkey_dispatch_duration_seconds": "duration_avg",
		"ethkey_derive_attempts":           "attempts_avg",
		"ethkey_rpc_connections":           "rpc_connections",
	}
	ret = make(map[string]float64)
	for name, mf := range mfm {
		newName, ok := crucialMetricNameMap[name]
		if !ok {
			continue
		}
		var sum, count float64
		for _, m := range mf.GetMetric() {
			switch mf.GetType() {
			case dto.MetricType_GAUGE:
				sum += m.GetGauge().GetValue()
			case dto.MetricType_COUNTER:
				sum += m.GetCounter().GetValue()
			case dto.MetricType_HISTOGRAM:
				sum += m.GetHistogram().GetSampleSum()
				count += float64(m.GetHistogram().GetSampleCount())
			}
		}
		if mf.GetType() == dto.MetricType_HISTOGRAM {
			if count == 0 {
				continue
			}
			sum /= count
		}
		ret[newName] = sum
	}
	log.Debugf("crucial metrics: %v", ret)
	return
}
