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
	"runtime"
	"sync"

	"github.com/ivpusic/grpool"

	"github.com/CovenantSQL/ethkey/conf"
	"github.com/CovenantSQL/ethkey/metric"
)

// PoolContext runs requests on a fixed set of goroutines.
type PoolContext struct {
	router *Router
	pool   *grpool.Pool

	mu     sync.RWMutex
	closed bool
}

// NewPoolContext returns a pool context, non positive sizes fall back to
// GOMAXPROCS workers and conf.DefaultQueueSize.
func NewPoolContext(router *Router, workers, queueSize int) *PoolContext {
	if router == nil {
		router = NewRouter()
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if queueSize <= 0 {
		queueSize = conf.DefaultQueueSize
	}
	return &PoolContext{
		router: router,
		pool:   grpool.NewPool(workers, queueSize),
	}
}

// Post schedules req and never blocks on a full queue.
func (p *PoolContext) Post(ctx context.Context, req *Request) <-chan *Response {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return closedResponse()
	}

	ch := make(chan *Response, 1)
	p.pool.WaitCount(1)
	metric.DispatchInFlight.Inc()
	job := func() {
		defer p.pool.JobDone()
		defer metric.DispatchInFlight.Dec()
		ch <- p.router.Route(ctx, req)
	}
	select {
	case p.pool.JobQueue <- job:
	default:
		go func() { p.pool.JobQueue <- job }()
	}
	return ch
}

// Close rejects new requests, waits for the posted ones and stops the workers.
func (p *PoolContext) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	p.pool.WaitAll()
	p.pool.Release()
}
