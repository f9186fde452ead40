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

package timer

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTimer(t *testing.T) {
	Convey("laps are measured from the previous one", t, func() {
		t := NewTimer()
		So(t.ToMap(), ShouldBeEmpty)

		time.Sleep(20 * time.Millisecond)
		t.Add("stretch")
		time.Sleep(50 * time.Millisecond)
		t.Add("search")

		m := t.ToMap()
		So(m, ShouldHaveLength, 3)
		So(m["stretch"], ShouldBeGreaterThanOrEqualTo, 20*time.Millisecond)
		So(m["search"], ShouldBeGreaterThanOrEqualTo, 50*time.Millisecond)
		So(m["total"], ShouldEqual, m["stretch"]+m["search"])

		f := t.ToLogFields()
		So(f, ShouldHaveLength, 3)
		So(f["search"], ShouldEqual, m["search"])
		So(f["total"], ShouldEqual, m["total"])
	})
}
