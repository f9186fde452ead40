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
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// SecretKeyLength is the byte length of a secp256k1 secret scalar.
const SecretKeyLength = 32

// EncodeHex encodes b as a 0x prefixed lowercase hex string, the convention
// used for every binary value crossing the dispatch boundary.
func EncodeHex(b []byte) string {
	return hexutil.Encode(b)
}

// DecodeHex decodes a hex string with or without the 0x prefix.
func DecodeHex(s string) (b []byte, err error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	if b, err = hexutil.Decode(s); err != nil {
		return nil, errors.Wrap(ErrInvalidEncoding, err.Error())
	}
	return
}

// DecodeSecretKey decodes a hex encoded secret key and checks its length. The
// scalar itself is not range checked here.
func DecodeSecretKey(s string) (sk []byte, err error) {
	if sk, err = DecodeHex(s); err != nil {
		return
	}
	if len(sk) != SecretKeyLength {
		return nil, errors.Wrapf(ErrInvalidEncoding,
			"secret key should be %d bytes, got %d", SecretKeyLength, len(sk))
	}
	return
}
