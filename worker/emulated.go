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

package worker

import (
	"context"
	"sync"

	"github.com/CovenantSQL/ethkey/metric"
)

type emulatedJob struct {
	ctx  context.Context
	req  *Request
	resp chan *Response
}

// EmulatedContext runs every request on one goroutine in posting order.
// Post only enqueues, so a response is never delivered inside Post.
type EmulatedContext struct {
	router *Router

	mu     sync.Mutex
	queue  []*emulatedJob
	closed bool
	wake   chan struct{}
	done   chan struct{}
}

// NewEmulatedContext starts the serial loop.
func NewEmulatedContext(router *Router) *EmulatedContext {
	if router == nil {
		router = NewRouter()
	}
	e := &EmulatedContext{
		router: router,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go e.loop()
	return e
}

// Post appends req to the queue.
func (e *EmulatedContext) Post(ctx context.Context, req *Request) <-chan *Response {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return closedResponse()
	}
	job := &emulatedJob{ctx: ctx, req: req, resp: make(chan *Response, 1)}
	e.queue = append(e.queue, job)
	metric.DispatchInFlight.Inc()
	select {
	case e.wake <- struct{}{}:
	default:
	}
	return job.resp
}

func (e *EmulatedContext) next() (job *emulatedJob, closed bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return nil, e.closed
	}
	job = e.queue[0]
	e.queue[0] = nil
	e.queue = e.queue[1:]
	return job, false
}

func (e *EmulatedContext) loop() {
	defer close(e.done)
	for {
		job, closed := e.next()
		if closed {
			return
		}
		if job == nil {
			<-e.wake
			continue
		}
		job.resp <- e.router.Route(job.ctx, job.req)
		metric.DispatchInFlight.Dec()
	}
}

// Close rejects new requests and returns after the queue drained.
func (e *EmulatedContext) Close() {
	e.mu.Lock()
	if !e.closed {
		e.closed = true
		select {
		case e.wake <- struct{}{}:
		default:
		}
	}
	e.mu.Unlock()
	<-e.done
}
