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
	"context"
	"expvar"
	"net"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	mw "github.com/zserge/metric"

	"github.com/CovenantSQL/ethkey/utils/log"
)

const (
	// MetricsPath serves the prometheus exposition format.
	MetricsPath = "/metrics"
	// DebugMetricsPath serves the expvar metric page.
	DebugMetricsPath = "/debug/metrics"

	collectInterval = 5 * time.Second
)

var publishOnce sync.Once

func gauge(name string) mw.Metric {
	if v := expvar.Get(name); v != nil {
		if m, ok := v.(mw.Metric); ok {
			return m
		}
	}
	return nil
}

func publish() {
	publishOnce.Do(func() {
		// Some Go internal metrics
		expvar.Publish("go:numgoroutine", mw.NewGauge("1m1s", "5m5s", "1h1m"))
		expvar.Publish("go:alloc", mw.NewGauge("1m1s", "5m5s", "1h1m"))
		expvar.Publish("go:alloctotal", mw.NewGauge("1m1s", "5m5s", "1h1m"))
		for _, name := range []string{"requests", "in_flight", "duration_avg", "attempts_avg", "rpc_connections"} {
			expvar.Publish("ethkey:"+name, mw.NewGauge("1m1s", "5m5s", "1h1m"))
		}

		http.Handle(MetricsPath, promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
		http.Handle(DebugMetricsPath, mw.Handler(mw.Exposed))
	})
}

func collect(g prometheus.Gatherer) (err error) {
	mm, err := Gather(g)
	if err != nil {
		return
	}
	for k, v := range mm.FilterCrucialMetrics() {
		if m := gauge("ethkey:" + k); m != nil {
			m.Add(v)
		}
	}

	m := &runtime.MemStats{}
	runtime.ReadMemStats(m)
	gauge("go:numgoroutine").Add(float64(runtime.NumGoroutine()))
	gauge("go:alloc").Add(float64(m.Alloc) / float64(MB))
	gauge("go:alloctotal").Add(float64(m.TotalAlloc) / float64(MB))
	return
}

// InitMetricWeb starts the metric web on metricWeb. It serves the default
// http mux, so handlers registered there such as the log level switch are
// exposed too. The returned server reports the bound address in Addr.
func InitMetricWeb(metricWeb string) (srv *http.Server, err error) {
	publish()
	if err = collect(Registry); err != nil {
		return
	}

	ln, err := net.Listen("tcp", metricWeb)
	if err != nil {
		return nil, errors.Wrap(err, "listen metric web failed")
	}

	ctx, cancel := context.WithCancel(context.Background())
	srv = &http.Server{Addr: ln.Addr().String(), Handler: http.DefaultServeMux}
	srv.RegisterOnShutdown(cancel)

	go func() {
		ticker := time.NewTicker(collectInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := collect(Registry); err != nil {
					log.WithError(err).Warning("collect metrics failed")
				}
			}
		}
	}()
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("metric web stopped")
		}
		cancel()
	}()

	log.WithField("addr", srv.Addr).Info("metric web started")
	return
}
