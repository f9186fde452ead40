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

import "github.com/pkg/errors"

var (
	// ErrDispatchFailure defines a fault inside routing, including recovered panics.
	ErrDispatchFailure = errors.New("dispatch failure")

	// ErrUnknownAction defines an unrecognized action in strict mode.
	ErrUnknownAction = errors.New("unknown action")

	// ErrContextClosed defines posting to a closed execution context.
	ErrContextClosed = errors.New("execution context closed")

	// ErrInvalidPayload defines a payload that does not match its action.
	ErrInvalidPayload = errors.New("invalid payload")
)
