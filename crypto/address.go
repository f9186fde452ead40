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

package crypto

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/CovenantSQL/ethkey/crypto/hash"
)

// PublicKeyLength is the length of an uncompressed public key without the
// leading 0x04 format byte.
const PublicKeyLength = 64

// PubKeyHash is an alias to function crypto.PublicKeyToAddress.
var PubKeyHash = PublicKeyToAddress

// PublicKeyToAddress generates the account address for the specified 64 byte
// X||Y public key: the last 20 bytes of its Keccak-256 digest.
func PublicKeyToAddress(pub []byte) (addr common.Address, err error) {
	if len(pub) != PublicKeyLength {
		err = errors.Wrapf(ErrInvalidEncoding,
			"public key should be %d bytes, got %d", PublicKeyLength, len(pub))
		return
	}
	h := hash.Keccak256H(pub)
	addr.SetBytes(h[hash.HashSize-common.AddressLength:])
	return
}

// AddressHex encodes an address with the lowercase 0x hex convention, not the
// EIP-55 mixed case checksum common.Address.Hex produces.
func AddressHex(addr common.Address) string {
	return EncodeHex(addr[:])
}
