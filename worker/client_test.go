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

package worker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/CovenantSQL/ethkey/crypto"
)

func TestClient(t *testing.T) {
	defer leaktest.Check(t)()

	for _, ec := range []ExecContext{
		NewPoolContext(NewRouter(WithKDFParams(cheapKDF())), 2, 4),
		NewEmulatedContext(NewRouter(WithKDFParams(cheapKDF()))),
	} {
		c := NewClient(ec)
		ctx := context.Background()

		Convey("typed calls round trip", t, func() {
			w, err := c.DeriveWallet(ctx, testPhrase)
			So(err, ShouldBeNil)
			So(w.Secret, ShouldEqual, testSecret)
			So(w.Address, ShouldEqual, testAddress)

			ok, err := c.VerifySecretKey(ctx, w.Secret)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)

			record, err := c.EncryptKey(ctx, w.Secret, "pw")
			So(err, ShouldBeNil)
			So(json.Valid(record), ShouldBeTrue)

			secret, err := c.DecryptKey(ctx, record, "pw")
			So(err, ShouldBeNil)
			So(secret, ShouldNotBeNil)
			So(*secret, ShouldEqual, testSecret)

			secret, err = c.DecryptKey(ctx, record, "wrong")
			So(err, ShouldBeNil)
			So(secret, ShouldBeNil)
		})

		Convey("envelope errors surface with their causes", t, func() {
			_, err := c.VerifySecretKey(ctx, "0xzz")
			So(errors.Cause(err), ShouldEqual, crypto.ErrInvalidEncoding)

			_, err = c.EncryptKey(ctx, "0x01", "pw")
			So(errors.Cause(err), ShouldEqual, crypto.ErrInvalidEncoding)
		})

		Convey("the caller stops waiting when its context ends", t, func() {
			cctx, cancel := context.WithTimeout(ctx, time.Millisecond)
			defer cancel()
			// the unbounded derivation notices cancellation in the search loop
			_, err := c.DeriveWallet(cctx, "correct horse battery staple")
			So(err, ShouldNotBeNil)
			So(errors.Cause(err), ShouldEqual, context.DeadlineExceeded)
		})

		ec.Close()
	}
}
