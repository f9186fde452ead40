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

package conf

import "time"

// Dispatch defaults.
const (
	// ModePool runs requests on a goroutine pool.
	ModePool = "pool"
	// ModeEmulated runs requests one at a time on a single loop.
	ModeEmulated = "emulated"

	// DefaultQueueSize is the pending job queue of the pool.
	DefaultQueueSize = 64
	// DefaultLogLevel applies when LogLevel is empty or unparsable.
	DefaultLogLevel = "info"
)

// Serving defaults.
const (
	// ShutdownTimeout bounds graceful shutdown of the websocket and metric web.
	ShutdownTimeout = 10 * time.Second
	// DefaultConfigFile is used by the serve command when -config is omitted.
	DefaultConfigFile = "~/.ethkey/config.yaml"
)
