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

	"github.com/pkg/errors"

	"github.com/CovenantSQL/ethkey/conf"
)

// ExecContext executes requests out of line. Responses arrive on the
// returned channel exactly once, in no particular order across requests.
type ExecContext interface {
	Post(ctx context.Context, req *Request) <-chan *Response
	Close()
}

// NewExecContext builds the execution context selected by cfg.Worker.Mode.
func NewExecContext(cfg *conf.Config) (ec ExecContext, err error) {
	router, err := NewRouterFromConfig(cfg)
	if err != nil {
		return
	}
	switch cfg.Worker.Mode {
	case conf.ModeEmulated:
		return NewEmulatedContext(router), nil
	case conf.ModePool:
		return NewPoolContext(router, cfg.Worker.Workers, cfg.Worker.QueueSize), nil
	default:
		return nil, errors.Wrapf(conf.ErrInvalidConfig, "unknown worker mode %q", cfg.Worker.Mode)
	}
}

func closedResponse() <-chan *Response {
	ch := make(chan *Response, 1)
	ch <- ErrorResponse(ErrContextClosed)
	return ch
}
