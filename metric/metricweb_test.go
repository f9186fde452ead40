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
	"io/ioutil"
	"net/http"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCrucialMetrics(t *testing.T) {
	Convey("dispatch observations show up as crucial metrics", t, func() {
		ObserveDispatch("verifySecretKey", OutcomeResult, 2*time.Millisecond)
		ObserveDispatch("verifySecretKey", OutcomeError, 4*time.Millisecond)
		ObserveDispatch("decryptKey", OutcomeAbsent, 6*time.Millisecond)
		DeriveAttempts.Observe(71)

		mm, err := Gather(Registry)
		So(err, ShouldBeNil)
		So(mm, ShouldContainKey, "ethkey_dispatch_requests_total")
		So(mm, ShouldContainKey, "ethkey_build_info")

		crucial := mm.FilterCrucialMetrics()
		So(crucial["requests"], ShouldBeGreaterThanOrEqualTo, 3)
		So(crucial["duration_avg"], ShouldBeGreaterThan, 0)
		So(crucial["attempts_avg"], ShouldBeGreaterThanOrEqualTo, 1)
		So(crucial, ShouldContainKey, "in_flight")
	})
}

func TestInitMetricWeb(t *testing.T) {
	Convey("metric web serves prometheus and expvar pages", t, func() {
		ObserveDispatch("deriveWallet", OutcomeResult, time.Millisecond)

		srv, err := InitMetricWeb("127.0.0.1:0")
		So(err, ShouldBeNil)
		defer srv.Shutdown(context.Background())

		get := func(path string) string {
			resp, err := http.Get("http://" + srv.Addr + path)
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			body, err := ioutil.ReadAll(resp.Body)
			So(err, ShouldBeNil)
			return string(body)
		}

		So(get(MetricsPath), ShouldContainSubstring, `ethkey_dispatch_requests_total{action="deriveWallet",outcome="result"}`)
		debug := get(DebugMetricsPath)
		So(debug, ShouldContainSubstring, "ethkey:requests")
		So(debug, ShouldContainSubstring, "go:alloc")

		_, err = InitMetricWeb(srv.Addr)
		So(err, ShouldNotBeNil)
	})
}
