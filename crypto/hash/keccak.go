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

package hash

import (
	"hash"

	"golang.org/x/crypto/sha3"
)

// keccakState is implemented by the x/crypto sponge, Read squeezes the
// output without the copy Sum makes.
type keccakState interface {
	hash.Hash
	Read([]byte) (int, error)
}

// Keccak256 calculates keccak256(data[0] || data[1] ...) and returns the
// resulting bytes.
func Keccak256(data ...[]byte) []byte {
	h := Keccak256H(data...)
	return h[:]
}

// Keccak256H calculates keccak256(data[0] || data[1] ...) and returns the
// resulting bytes as a Hash.
func Keccak256H(data ...[]byte) (h Hash) {
	d := sha3.NewLegacyKeccak256().(keccakState)
	for _, b := range data {
		d.Write(b)
	}
	d.Read(h[:])
	return
}

// Hasher keeps a single Keccak-256 state to compute long hash chains
// without allocating per round. A Hasher is not safe for concurrent use.
type Hasher struct {
	state keccakState
}

// NewHasher returns a new Keccak-256 Hasher.
func NewHasher() *Hasher {
	return &Hasher{
		state: sha3.NewLegacyKeccak256().(keccakState),
	}
}

// Sum writes keccak256(in) to out. in and out may alias.
func (h *Hasher) Sum(in []byte, out *Hash) {
	h.state.Reset()
	h.state.Write(in)
	h.state.Read(out[:])
}

// Chain replaces h with keccak256(h) rounds times.
func (h *Hasher) Chain(dst *Hash, rounds int) {
	for i := 0; i < rounds; i++ {
		h.Sum(dst[:], dst)
	}
}
