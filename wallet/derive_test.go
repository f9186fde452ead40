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
	"encoding/json"
	"strings"
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/CovenantSQL/ethkey/crypto"
	"github.com/CovenantSQL/ethkey/crypto/asymmetric"
)

type vector struct {
	phrase   string
	secret   string
	public   string
	address  string
	attempts int
}

var vectors = []vector{
	{
		phrase:   "correct horse battery staple",
		secret:   "0x1e7f30bb2119f75831633e0f51edc7913a38ce7ab3e8f9e2264c7b88c372085d",
		public:   "0x637446a00878c1bba96988d8a08cc8ce9399647137a927cd8d4f262c5295a1ca" + "b6fe2db171e83c9b0fed593f47dabbd3065a44a1919b5507d3220777cb474577",
		address:  "0x0021f80b7f29b9c84e8099c2c6c74a46ed2268c4",
		attempts: 71,
	},
	{
		phrase:   "jacogr",
		secret:   "0x4dfc66dd28c95990ce6bc53fcc01b039d7a3db48fb5ecb59fb0e3fe3feec9cf0",
		public:   "0x88df38205cc9d2d7ff4e917eb3c7bfc3a68af35dc54f9cb1af5c5bc1426e95a3" + "6f8630ef6deeecce41d75bdc2314ea2c17400413c54740516e5ebb6824f39a87",
		address:  "0x00feb1005c11a5e63af826bb8d803d69d0caeab3",
		attempts: 21,
	},
}

func TestDerive(t *testing.T) {
	for _, v := range vectors {
		v := v
		for _, c := range []asymmetric.Curve{asymmetric.Ethereum, asymmetric.Btcec} {
			c := c
			Convey("derive "+v.phrase+" with "+c.Name(), t, func() {
				w, err := Derive(context.Background(), []byte(v.phrase), WithCurve(c))
				So(err, ShouldBeNil)
				So(w.Attempts, ShouldEqual, v.attempts)

				hw := w.Hex()
				So(hw.Secret, ShouldEqual, v.secret)
				So(hw.Public, ShouldEqual, v.public)
				So(hw.Address, ShouldEqual, v.address)
				So(w.Address[0], ShouldEqual, byte(0))
				So(c.IsValidSecretKey(w.SecretKey), ShouldBeTrue)

				addr, err := crypto.PublicKeyToAddress(w.PublicKey)
				So(err, ShouldBeNil)
				So(addr, ShouldEqual, w.Address)
			})
		}
	}

	Convey("derive is deterministic and returns independent copies", t, func() {
		v := vectors[1]
		w1, err := Derive(context.Background(), []byte(v.phrase))
		So(err, ShouldBeNil)
		w2, err := Derive(context.Background(), []byte(v.phrase))
		So(err, ShouldBeNil)
		So(w1.Hex(), ShouldResemble, w2.Hex())

		w1.Zero()
		So(w1.SecretKey, ShouldBeNil)
		So(w2.Hex().Secret, ShouldEqual, v.secret)
	})

	Convey("an empty passphrase is accepted", t, func() {
		w, err := Derive(context.Background(), nil)
		So(err, ShouldBeNil)
		So(w.Attempts, ShouldEqual, 4)
		So(w.Hex().Secret, ShouldEqual, "0x4d5db4107d237df6a3d58ee5f70ae63d73d7658d4026f2eefd2f204c81682cb7")
		So(w.Hex().Address, ShouldEqual, "0x00a329c0648769a73afac7f9381e08fb43dbea72")
	})

	Convey("hex wallet uses the transport field names", t, func() {
		w, err := Derive(context.Background(), []byte(vectors[1].phrase))
		So(err, ShouldBeNil)
		data, err := json.Marshal(w.Hex())
		So(err, ShouldBeNil)
		So(string(data), ShouldEqual, `{"secret":"`+vectors[1].secret+`","public":"`+
			vectors[1].public+`","address":"`+vectors[1].address+`"}`)
		So(strings.ToLower(string(data)), ShouldEqual, string(data))
	})
}

func TestDeriveLimits(t *testing.T) {
	Convey("a cancelled context stops derivation", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		w, err := Derive(ctx, []byte(vectors[0].phrase))
		So(w, ShouldBeNil)
		So(errors.Cause(err), ShouldEqual, context.Canceled)
	})

	Convey("attempt cap", t, func() {
		v := vectors[0]
		w, err := Derive(context.Background(), []byte(v.phrase), WithMaxAttempts(v.attempts-1))
		So(w, ShouldBeNil)
		So(errors.Cause(err), ShouldEqual, ErrSearchExhausted)

		w, err = Derive(context.Background(), []byte(v.phrase), WithMaxAttempts(v.attempts))
		So(err, ShouldBeNil)
		So(w.Hex().Address, ShouldEqual, v.address)
	})

	Convey("nil options fall back to defaults", t, func() {
		w, err := Derive(context.Background(), []byte(vectors[1].phrase), WithCurve(nil), WithMaxAttempts(-1))
		So(err, ShouldBeNil)
		So(w.Attempts, ShouldEqual, vectors[1].attempts)
	})
}

func TestVerify(t *testing.T) {
	Convey("valid and invalid scalars", t, func() {
		ok, err := Verify(vectors[0].secret, nil)
		So(err, ShouldBeNil)
		So(ok, ShouldBeTrue)

		ok, err = Verify(strings.TrimPrefix(vectors[1].secret, "0x"), asymmetric.Btcec)
		So(err, ShouldBeNil)
		So(ok, ShouldBeTrue)

		ok, err = Verify("0x"+strings.Repeat("00", 32), nil)
		So(err, ShouldBeNil)
		So(ok, ShouldBeFalse)

		ok, err = Verify("0xfffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", nil)
		So(err, ShouldBeNil)
		So(ok, ShouldBeFalse)
	})

	Convey("malformed hex is an encoding error", t, func() {
		for _, s := range []string{"", "0x", "0x123", "0xzz" + strings.Repeat("00", 31), "0x" + strings.Repeat("00", 31)} {
			ok, err := Verify(s, nil)
			So(ok, ShouldBeFalse)
			So(errors.Cause(err), ShouldEqual, crypto.ErrInvalidEncoding)
		}
	})
}
