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

/*
Package worker implements the dispatch boundary: requests naming an action
and a JSON payload are routed to the derivation engine or the keystore codec
and answered asynchronously with an envelope carrying either a result or an
error, never both.

Two execution contexts satisfy the same contract. The pool context runs
requests in parallel on a goroutine pool, the emulated context runs them one
at a time on a single loop goroutine. Neither delivers a response within the
Post call that issued the request, and neither orders responses across
requests.
*/
package worker
