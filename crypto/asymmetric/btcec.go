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

package asymmetric

import (
	ec "github.com/btcsuite/btcd/btcec"
	"github.com/pkg/errors"

	"github.com/CovenantSQL/ethkey/crypto"
)

// Btcec is the btcd secp256k1 backend, pure Go and cgo free.
var Btcec Curve = btcecCurve{}

type btcecCurve struct{}

func (btcecCurve) Name() string {
	return BtcecCurveName
}

func (btcecCurve) IsValidSecretKey(sk []byte) bool {
	return inOpenOrderInterval(sk, ec.S256().N)
}

func (c btcecCurve) PublicKey(sk []byte) ([]byte, error) {
	// PrivKeyFromBytes reduces out of range scalars silently
	if !c.IsValidSecretKey(sk) {
		return nil, errors.Wrap(crypto.ErrInvalidKeyMaterial, "secret key rejected by curve")
	}
	_, pub := ec.PrivKeyFromBytes(ec.S256(), sk)
	return pub.SerializeUncompressed()[1:], nil
}
