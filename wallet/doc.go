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
Package wallet derives account key pairs from passphrases.

A passphrase is hashed with Keccak-256, stretched by StretchRounds further
rounds, then rehashed until the digest is a valid secp256k1 scalar whose
account address starts with a zero byte. The same passphrase always yields
the same wallet.

The search terminates with overwhelming probability after a few hundred
rounds but is not bounded, Derive therefore honours context cancellation and
an optional attempt cap. Neither changes the result of a completed search.
*/
package wallet
