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

package utils

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStartStopProfile(t *testing.T) {
	dir, err := ioutil.TempDir("", "ethkey-profile")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	Convey("profiles are written on stop", t, func() {
		cpuProfile := filepath.Join(dir, "cpu.prof")
		memProfile := filepath.Join(dir, "mem.prof")
		So(StartProfile(cpuProfile, memProfile), ShouldBeNil)
		StopProfile()

		cpuFileInfo, err := os.Stat(cpuProfile)
		So(err, ShouldBeNil)
		So(cpuFileInfo.Size(), ShouldBeGreaterThan, 0)
		memFileInfo, err := os.Stat(memProfile)
		So(err, ShouldBeNil)
		So(memFileInfo.Size(), ShouldBeGreaterThan, 0)
	})
	Convey("empty paths do nothing", t, func() {
		So(StartProfile("", ""), ShouldBeNil)
		StopProfile()
	})
	Convey("a bad path starts nothing", t, func() {
		bad := filepath.Join(dir, "missing", "x.prof")
		So(StartProfile(bad, ""), ShouldNotBeNil)
		So(StartProfile(filepath.Join(dir, "cpu2.prof"), bad), ShouldNotBeNil)
		StopProfile()
		So(Exist(filepath.Join(dir, "cpu2.prof")), ShouldBeTrue)
	})
}
