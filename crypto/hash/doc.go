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

// Package hash provides the Keccak-256 digest used for key stretching,
// address derivation and keystore MACs.
//
// Q: Why not SHA3-256?
//
// A: Ethereum froze the Keccak submission before NIST changed the padding
// byte from 0x01 to 0x06 for FIPS-202. Addresses, keystore MACs and every
// other consensus-visible digest use the original padding, so the
// standard library's sha3 (and golang.org/x/crypto/sha3.New256) produce
// different output. This package only ever uses the legacy permutation.
package hash
