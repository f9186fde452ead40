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

package wallet

import (
	"context"

	"github.com/pkg/errors"

	"github.com/CovenantSQL/ethkey/crypto"
	"github.com/CovenantSQL/ethkey/crypto/asymmetric"
	"github.com/CovenantSQL/ethkey/crypto/hash"
	"github.com/CovenantSQL/ethkey/utils"
	"github.com/CovenantSQL/ethkey/utils/log"
	"github.com/CovenantSQL/ethkey/utils/timer"
	"github.com/CovenantSQL/ethkey/utils/trace"
)

const (
	// StretchRounds is the fixed number of extra hash rounds applied to the
	// passphrase digest before the search starts.
	StretchRounds = 16384

	cancelCheckInterval = 64
)

// ErrSearchExhausted indicates the attempt cap was reached before a usable
// key was found.
var ErrSearchExhausted = errors.New("wallet search exhausted")

type options struct {
	curve       asymmetric.Curve
	maxAttempts int
}

// Option configures Derive.
type Option func(*options)

// WithCurve selects the secp256k1 backend, nil keeps the default.
func WithCurve(c asymmetric.Curve) Option {
	return func(o *options) {
		if c != nil {
			o.curve = c
		}
	}
}

// WithMaxAttempts caps the search rounds, 0 means unbounded.
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxAttempts = n
		}
	}
}

// Derive turns a passphrase into a wallet. It returns ctx.Err() wrapped when
// ctx is done before the search completes.
func Derive(ctx context.Context, phrase []byte, opts ...Option) (w *Wallet, err error) {
	o := options{curve: asymmetric.DefaultCurve}
	for _, opt := range opts {
		opt(&o)
	}
	if err = ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "derivation cancelled")
	}

	var (
		tm   = timer.NewTimer()
		h    = hash.NewHasher()
		seed hash.Hash
	)
	defer utils.Zero(seed[:])

	region := trace.StartRegion(ctx, "stretch")
	h.Sum(phrase, &seed)
	h.Chain(&seed, StretchRounds)
	region.End()
	tm.Add("stretch")

	region = trace.StartRegion(ctx, "search")
	defer region.End()

	for attempts := 1; ; attempts++ {
		if o.maxAttempts > 0 && attempts > o.maxAttempts {
			return nil, errors.Wrapf(ErrSearchExhausted, "no key after %d attempts", o.maxAttempts)
		}
		if attempts%cancelCheckInterval == 0 {
			select {
			case <-ctx.Done():
				log.WithField("attempts", attempts).Debug("derivation cancelled")
				return nil, errors.Wrap(ctx.Err(), "derivation cancelled")
			default:
			}
		}

		h.Sum(seed[:], &seed)
		if !o.curve.IsValidSecretKey(seed[:]) {
			continue
		}
		pub, err := o.curve.PublicKey(seed[:])
		if err != nil {
			return nil, err
		}
		addr, err := crypto.PublicKeyToAddress(pub)
		if err != nil {
			return nil, err
		}
		if addr[0] != 0 {
			continue
		}

		w = &Wallet{
			SecretKey: append([]byte(nil), seed[:]...),
			PublicKey: pub,
			Address:   addr,
			Attempts:  attempts,
		}
		tm.Add("search")
		log.WithFields(tm.ToLogFields()).WithFields(log.Fields{
			"attempts": attempts,
			"curve":    o.curve.Name(),
		}).Debug("wallet derived")
		return w, nil
	}
}

// Verify decodes a hex secret key and checks it against the curve. Malformed
// hex or a length other than 32 bytes yields crypto.ErrInvalidEncoding, an
// out of range scalar yields false with no error.
func Verify(secretHex string, c asymmetric.Curve) (ok bool, err error) {
	if c == nil {
		c = asymmetric.DefaultCurve
	}
	sk, err := crypto.DecodeSecretKey(secretHex)
	if err != nil {
		return false, err
	}
	defer utils.Zero(sk)
	return c.IsValidSecretKey(sk), nil
}
