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
	"crypto/rand"
	"io"
	"math/big"

	"github.com/pkg/errors"

	"github.com/CovenantSQL/ethkey/crypto"
	"github.com/CovenantSQL/ethkey/utils/log"
)

const (
	// EthereumCurveName names the go-ethereum backend.
	EthereumCurveName = "ethereum"
	// BtcecCurveName names the btcec backend.
	BtcecCurveName = "btcec"
)

// Curve is the secp256k1 capability the derivation engine relies on.
type Curve interface {
	// Name returns the backend name used in configuration.
	Name() string
	// IsValidSecretKey reports whether sk is a 32 byte scalar in (0, N).
	IsValidSecretKey(sk []byte) bool
	// PublicKey multiplies the generator by sk and returns the 64 byte X||Y
	// encoding.
	PublicKey(sk []byte) ([]byte, error)
}

var (
	// DefaultCurve is used when no curve is configured.
	DefaultCurve Curve = Ethereum

	curves = map[string]Curve{
		EthereumCurveName: Ethereum,
		BtcecCurveName:    Btcec,
	}
)

// CurveByName returns the registered backend, empty name means DefaultCurve.
func CurveByName(name string) (c Curve, err error) {
	if name == "" {
		return DefaultCurve, nil
	}
	var ok bool
	if c, ok = curves[name]; !ok {
		err = errors.Errorf("unknown curve backend %q", name)
	}
	return
}

// inOpenOrderInterval checks 0 < sk < n with sk interpreted big endian.
func inOpenOrderInterval(sk []byte, n *big.Int) bool {
	if len(sk) != crypto.SecretKeyLength {
		return false
	}
	d := new(big.Int).SetBytes(sk)
	return d.Sign() > 0 && d.Cmp(n) < 0
}

// GenSecretKey draws a fresh valid secret key from crypto/rand.
func GenSecretKey(c Curve) (sk []byte, err error) {
	if c == nil {
		c = DefaultCurve
	}
	sk = make([]byte, crypto.SecretKeyLength)
	for {
		if _, err = io.ReadFull(rand.Reader, sk); err != nil {
			log.WithError(err).Error("read random secret failed")
			return nil, err
		}
		if c.IsValidSecretKey(sk) {
			return
		}
	}
}
