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

// Package trace annotates dispatch and derivation for go tool trace.
package trace

import (
	"context"
	"io"
	"os"
	"runtime/trace"

	"github.com/pkg/errors"

	"github.com/CovenantSQL/ethkey/utils/log"
)

// Task is a runtime/trace task.
type Task = trace.Task

// Region is a runtime/trace region.
type Region = trace.Region

// NewTask starts a task of taskType under pctx.
func NewTask(pctx context.Context, taskType string) (ctx context.Context, task *Task) {
	return trace.NewTask(pctx, taskType)
}

// StartRegion starts a region in the goroutine of ctx's task.
func StartRegion(ctx context.Context, regionType string) *Region {
	return trace.StartRegion(ctx, regionType)
}

// Log emits a message to the trace when tracing is on.
func Log(ctx context.Context, category, message string) {
	if trace.IsEnabled() {
		trace.Log(ctx, category, message)
	}
}

var traceFile *os.File

// Start writes the execution trace to path, empty path does nothing.
func Start(path string) (err error) {
	if path == "" {
		return
	}
	if traceFile, err = os.Create(path); err != nil {
		log.WithField("file", path).WithError(err).Error("failed to create trace file")
		return errors.Wrap(err, "create trace file failed")
	}
	if err = trace.Start(io.Writer(traceFile)); err != nil {
		traceFile.Close()
		traceFile = nil
		return errors.Wrap(err, "start trace failed")
	}
	log.WithField("file", path).Info("writing execution trace to file")
	return
}

// Stop flushes and closes the trace started by Start.
func Stop() {
	if traceFile == nil {
		return
	}
	trace.Stop()
	traceFile.Close()
	traceFile = nil
	log.Info("execution trace stopped")
}
