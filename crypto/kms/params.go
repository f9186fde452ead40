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

package kms

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

const (
	// KDFPBKDF2 names the pbkdf2 key derivation.
	KDFPBKDF2 = "pbkdf2"
	// KDFScrypt names the scrypt key derivation.
	KDFScrypt = "scrypt"
	// PBKDF2PRF is the only pbkdf2 pseudo random function supported.
	PBKDF2PRF = "hmac-sha256"

	// DefaultPBKDF2C is the keythereum pbkdf2 iteration count.
	DefaultPBKDF2C = 262144
	// DefaultScryptN is the standard scrypt cost.
	DefaultScryptN = 262144
	// DefaultScryptR is the standard scrypt block size.
	DefaultScryptR = 8
	// DefaultScryptP is the standard scrypt parallelism.
	DefaultScryptP = 1
	// DerivedKeyLength is the KDF output length, cipher key plus mac key.
	DerivedKeyLength = 32
)

var (
	// ErrUnsupportedKDF indicates a kdf name other than pbkdf2 or scrypt.
	ErrUnsupportedKDF = errors.New("unsupported key derivation function")
	// ErrInvalidParams indicates non-positive or inconsistent kdf parameters.
	ErrInvalidParams = errors.New("invalid key derivation parameters")
)

// Params selects the key derivation used when sealing a record.
type Params struct {
	KDF   string
	C     int
	N     int
	R     int
	P     int
	DKLen int
}

// StandardParams returns the keythereum defaults, pbkdf2 with 262144 rounds.
func StandardParams() Params {
	return Params{
		KDF:   KDFPBKDF2,
		C:     DefaultPBKDF2C,
		DKLen: DerivedKeyLength,
	}
}

// ScryptParams returns the geth standard scrypt parameters.
func ScryptParams() Params {
	return Params{
		KDF:   KDFScrypt,
		N:     DefaultScryptN,
		R:     DefaultScryptR,
		P:     DefaultScryptP,
		DKLen: DerivedKeyLength,
	}
}

// Validate checks the parameters of the selected kdf only.
func (p Params) Validate() error {
	if p.DKLen < DerivedKeyLength || p.DKLen > maxDKLen {
		return errors.Wrapf(ErrInvalidParams, "dklen must be within [%d, %d]", DerivedKeyLength, maxDKLen)
	}
	switch p.KDF {
	case KDFPBKDF2:
		if p.C <= 0 || p.C > maxPBKDF2C {
			return errors.Wrapf(ErrInvalidParams, "pbkdf2 iteration count must be within [1, %d]", maxPBKDF2C)
		}
	case KDFScrypt:
		if p.N <= 1 || p.N&(p.N-1) != 0 {
			return errors.Wrap(ErrInvalidParams, "scrypt n must be a power of 2 greater than 1")
		}
		if p.R <= 0 || p.P <= 0 {
			return errors.Wrap(ErrInvalidParams, "scrypt r and p must be positive")
		}
		if p.N > maxScryptWork/p.R || p.P > maxScryptWork/(p.N*p.R) {
			return errors.Wrapf(ErrInvalidParams, "scrypt n*r*p must not exceed %d", maxScryptWork)
		}
	default:
		return errors.Wrapf(ErrUnsupportedKDF, "kdf %q", p.KDF)
	}
	return nil
}

func (p Params) deriveKey(password, salt []byte) (dk []byte, err error) {
	switch p.KDF {
	case KDFPBKDF2:
		dk = pbkdf2.Key(password, salt, p.C, p.DKLen, sha256.New)
	case KDFScrypt:
		dk, err = scrypt.Key(password, salt, p.N, p.R, p.P, p.DKLen)
	default:
		err = ErrUnsupportedKDF
	}
	return
}

// kdfParams renders the record kdfparams object, map keys marshal sorted.
func (p Params) kdfParams(salt []byte) map[string]interface{} {
	m := map[string]interface{}{
		"dklen": p.DKLen,
		"salt":  hex.EncodeToString(salt),
	}
	if p.KDF == KDFPBKDF2 {
		m["c"] = p.C
		m["prf"] = PBKDF2PRF
	} else {
		m["n"] = p.N
		m["r"] = p.R
		m["p"] = p.P
	}
	return m
}
