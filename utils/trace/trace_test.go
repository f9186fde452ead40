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

package trace

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTrace(t *testing.T) {
	Convey("annotations work with and without tracing", t, func() {
		ctx, task := NewTask(context.Background(), "test")
		StartRegion(ctx, "region").End()
		Log(ctx, "k", "v")
		task.End()

		So(Start(""), ShouldBeNil)
		Stop()

		dir, err := ioutil.TempDir("", "ethkey-trace")
		So(err, ShouldBeNil)
		defer os.RemoveAll(dir)
		path := filepath.Join(dir, "trace.out")
		So(Start(path), ShouldBeNil)
		ctx, task = NewTask(context.Background(), "traced")
		Log(ctx, "k", "v")
		task.End()
		Stop()

		fi, err := os.Stat(path)
		So(err, ShouldBeNil)
		So(fi.Size(), ShouldBeGreaterThan, 0)

		So(Start(filepath.Join(dir, "missing", "trace.out")), ShouldNotBeNil)
	})
}
