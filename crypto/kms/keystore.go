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
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io"
	"math"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

	"github.com/CovenantSQL/ethkey/crypto"
	"github.com/CovenantSQL/ethkey/crypto/asymmetric"
	"github.com/CovenantSQL/ethkey/crypto/hash"
	"github.com/CovenantSQL/ethkey/crypto/symmetric"
	"github.com/CovenantSQL/ethkey/utils"
	"github.com/CovenantSQL/ethkey/utils/log"
)

const (
	// Version is the secret storage version written and accepted.
	Version = 3
	// CipherName is the only record cipher.
	CipherName = "aes-128-ctr"
	// SaltSize is the kdf salt length EncryptKey draws.
	SaltSize = 32

	// upper bounds on the work an untrusted record may demand
	maxPBKDF2C    = 1 << 24
	maxScryptWork = 1 << 23 // n * r * p
	maxDKLen      = 64
)

// ErrDecryptionFailure covers wrong passwords, corrupt records and records
// of an unsupported shape. Callers can not tell these apart.
var ErrDecryptionFailure = errors.New("decryption failure")

// CipherParams holds the counter mode iv.
type CipherParams struct {
	IV string `json:"iv"`
}

// CryptoSection is the sealed part of a record.
type CryptoSection struct {
	Cipher       string                 `json:"cipher"`
	CipherText   string                 `json:"ciphertext"`
	CipherParams CipherParams           `json:"cipherparams"`
	KDF          string                 `json:"kdf"`
	KDFParams    map[string]interface{} `json:"kdfparams"`
	MAC          string                 `json:"mac"`
}

// Record is a Web3 Secret Storage v3 key record.
type Record struct {
	Address string        `json:"address"`
	Crypto  CryptoSection `json:"crypto"`
	ID      string        `json:"id"`
	Version int           `json:"version"`
}

// DumpKey seals secret under password with the given salt and iv.
func DumpKey(password, secret, salt, iv []byte, params Params) (rec *Record, err error) {
	if len(secret) != crypto.SecretKeyLength {
		return nil, errors.Wrapf(crypto.ErrInvalidEncoding,
			"secret key should be %d bytes, got %d", crypto.SecretKeyLength, len(secret))
	}
	if len(salt) == 0 {
		return nil, errors.Wrap(ErrInvalidParams, "empty salt")
	}
	if len(iv) != symmetric.IVSize {
		return nil, errors.Wrapf(ErrInvalidParams, "iv should be %d bytes", symmetric.IVSize)
	}
	if err = params.Validate(); err != nil {
		return
	}

	pub, err := asymmetric.DefaultCurve.PublicKey(secret)
	if err != nil {
		return
	}
	addr, err := crypto.PublicKeyToAddress(pub)
	if err != nil {
		return
	}

	dk, err := params.deriveKey(password, salt)
	if err != nil {
		return nil, errors.Wrap(err, "derive key failed")
	}
	defer utils.Zero(dk)

	cipherText, err := symmetric.XORKeyStream(dk[:symmetric.KeySize], iv, secret)
	if err != nil {
		return
	}
	mac := hash.Keccak256(dk[16:32], cipherText)

	rec = &Record{
		Address: strings.TrimPrefix(crypto.AddressHex(addr), "0x"),
		Crypto: CryptoSection{
			Cipher:       CipherName,
			CipherText:   hex.EncodeToString(cipherText),
			CipherParams: CipherParams{IV: hex.EncodeToString(iv)},
			KDF:          params.KDF,
			KDFParams:    params.kdfParams(salt),
			MAC:          hex.EncodeToString(mac),
		},
		ID:      uuid.Must(uuid.NewV4()).String(),
		Version: Version,
	}

	log.WithFields(log.Fields{
		"kdf":     params.KDF,
		"address": rec.Address,
	}).Debug("key record sealed")
	return
}

// EncryptKey seals secret with a fresh random salt and iv and returns the
// record JSON.
func EncryptKey(secret, password []byte, params Params) (data []byte, err error) {
	salt := make([]byte, SaltSize)
	iv := make([]byte, symmetric.IVSize)
	if _, err = io.ReadFull(rand.Reader, salt); err != nil {
		return nil, errors.Wrap(err, "read random salt failed")
	}
	if _, err = io.ReadFull(rand.Reader, iv); err != nil {
		return nil, errors.Wrap(err, "read random iv failed")
	}
	rec, err := DumpKey(password, secret, salt, iv, params)
	if err != nil {
		return
	}
	return json.Marshal(rec)
}

type sealedRecord struct {
	Crypto  keystore.CryptoJSON `json:"crypto"`
	Version int                 `json:"version"`
}

// DecryptKey opens a record JSON and returns the 32 byte secret key.
func DecryptKey(data, password []byte) (secret []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			secret = nil
			err = errors.Wrapf(ErrDecryptionFailure, "malformed record: %v", r)
		}
		if err != nil {
			log.WithError(err).Debug("decrypt key record failed")
		}
	}()

	var rec sealedRecord
	if err = json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(ErrDecryptionFailure, "record is not valid json")
	}
	if rec.Version != Version {
		return nil, errors.Wrapf(ErrDecryptionFailure, "unsupported record version %d", rec.Version)
	}
	if err = checkKDFParams(rec.Crypto.KDF, rec.Crypto.KDFParams); err != nil {
		return nil, errors.Wrap(ErrDecryptionFailure, err.Error())
	}

	if secret, err = keystore.DecryptDataV3(rec.Crypto, string(password)); err != nil {
		if err == keystore.ErrDecrypt {
			return nil, errors.Wrap(ErrDecryptionFailure, "mac mismatch")
		}
		return nil, errors.Wrap(ErrDecryptionFailure, err.Error())
	}
	if len(secret) != crypto.SecretKeyLength {
		utils.Zero(secret)
		return nil, errors.Wrapf(ErrDecryptionFailure,
			"sealed secret should be %d bytes, got %d", crypto.SecretKeyLength, len(secret))
	}
	return
}

// checkKDFParams rejects kdfparams the keystore decoder would choke on.
func checkKDFParams(kdf string, m map[string]interface{}) error {
	if _, ok := m["salt"].(string); !ok {
		return errors.New("missing salt")
	}
	if dkLen, ok := intParam(m, "dklen"); !ok || dkLen < DerivedKeyLength || dkLen > maxDKLen {
		return errors.New("dklen missing or out of range")
	}
	switch kdf {
	case KDFPBKDF2:
		if c, ok := intParam(m, "c"); !ok || c <= 0 || c > maxPBKDF2C {
			return errors.New("pbkdf2 iteration count out of range")
		}
	case KDFScrypt:
		n, okN := intParam(m, "n")
		r, okR := intParam(m, "r")
		p, okP := intParam(m, "p")
		if !okN || !okR || !okP || n <= 1 || r <= 0 || p <= 0 {
			return errors.New("scrypt parameters missing")
		}
		// scrypt allocates 128*r*p bytes up front and 128*r*n for its table
		if n > maxScryptWork/r || p > maxScryptWork/(n*r) {
			return errors.New("scrypt cost out of range")
		}
	default:
		return errors.Errorf("unsupported kdf %q", kdf)
	}
	return nil
}

func intParam(m map[string]interface{}, key string) (int, bool) {
	switch v := m[key].(type) {
	case float64:
		if v != math.Trunc(v) || v < 0 || v > math.MaxInt32 {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}
