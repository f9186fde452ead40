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
	"os"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/sys/unix"
)

func TestWaitForExit(t *testing.T) {
	Convey("SIGTERM is delivered once", t, func() {
		ch := WaitForExit()
		So(unix.Kill(os.Getpid(), unix.SIGTERM), ShouldBeNil)

		var got os.Signal
		select {
		case got = <-ch:
		case <-time.After(5 * time.Second):
		}
		So(got, ShouldEqual, unix.SIGTERM)
	})
}
