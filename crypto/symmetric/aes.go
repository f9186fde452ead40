/*
 * Copyright 2018 The CovenantSQL Authors.
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

// Package symmetric implements the AES-128-CTR stream transform used by
// Web3 Secret Storage records.
package symmetric

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/pkg/errors"
)

const (
	// KeySize is the AES-128 key length, the first half of the KDF output.
	KeySize = 16
	// IVSize is the counter block length.
	IVSize = aes.BlockSize
)

var (
	// ErrKeySize indicates the cipher key is not 16 bytes.
	ErrKeySize = errors.New("aes-128-ctr key must be 16 bytes")
	// ErrIVSize indicates the initial counter block is not 16 bytes.
	ErrIVSize = errors.New("aes-128-ctr iv must be 16 bytes")
)

// XORKeyStream runs AES-128 in counter mode over in and returns a new slice.
// Encryption and decryption are the same operation.
func XORKeyStream(key, iv, in []byte) (out []byte, err error) {
	if len(key) != KeySize {
		return nil, ErrKeySize
	}
	if len(iv) != IVSize {
		return nil, ErrIVSize
	}
	// key length is checked above, NewCipher can not fail
	block, _ := aes.NewCipher(key)
	out = make([]byte, len(in))
	cipher.NewCTR(block, iv).XORKeyStream(out, in)
	return
}
