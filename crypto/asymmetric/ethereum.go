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
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/CovenantSQL/ethkey/crypto"
)

// Ethereum is the go-ethereum secp256k1 backend.
var Ethereum Curve = ethereumCurve{}

type ethereumCurve struct{}

func (ethereumCurve) Name() string {
	return EthereumCurveName
}

func (ethereumCurve) IsValidSecretKey(sk []byte) bool {
	return inOpenOrderInterval(sk, ethcrypto.S256().Params().N)
}

func (ethereumCurve) PublicKey(sk []byte) (pub []byte, err error) {
	priv, err := ethcrypto.ToECDSA(sk)
	if err != nil {
		// do not wrap the cause, it may quote the scalar
		return nil, errors.Wrap(crypto.ErrInvalidKeyMaterial, "secret key rejected by curve")
	}
	return ethcrypto.FromECDSAPub(&priv.PublicKey)[1:], nil
}
