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

package hash

import (
	"encoding/json"
	"strings"
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	. "github.com/smartystreets/goconvey/convey"
	yaml "gopkg.in/yaml.v2"
)

func TestKeccak256(t *testing.T) {
	Convey("known keccak256 vectors", t, func() {
		So(Keccak256H([]byte("jacogr")).String(), ShouldEqual,
			"2f4ff4b5a87abbd2edfed699db48a97744e028c7f7ce36444d40d29d792aa4dc")
		So(Keccak256H([]byte{1, 2, 3, 4}).String(), ShouldEqual,
			"a6885b3731702da62e8e4a8f584ac46a7f6822f4e2ba50fba902f67b1588d23b")
		So(Keccak256H().String(), ShouldEqual,
			"c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")
	})
	Convey("multiple inputs are concatenated", t, func() {
		So(Keccak256([]byte{1, 2}, []byte{3, 4}), ShouldResemble, Keccak256([]byte{1, 2, 3, 4}))
	})
	Convey("matches go-ethereum", t, func() {
		in := []byte(strings.Repeat("correct horse battery staple", 20))
		So(Keccak256(in), ShouldResemble, ethcrypto.Keccak256(in))
	})
}

func TestHasher(t *testing.T) {
	Convey("hasher matches one-shot digest", t, func() {
		var (
			h   = NewHasher()
			out Hash
		)
		h.Sum([]byte("jacogr"), &out)
		So(out, ShouldResemble, Keccak256H([]byte("jacogr")))

		// reuse after a previous Sum
		h.Sum([]byte{1, 2, 3, 4}, &out)
		So(out, ShouldResemble, Keccak256H([]byte{1, 2, 3, 4}))
	})
	Convey("chain equals repeated one-shot digests", t, func() {
		var (
			chained = Keccak256H([]byte("seed"))
			manual  = chained
		)
		NewHasher().Chain(&chained, 100)
		for i := 0; i < 100; i++ {
			manual = Keccak256H(manual[:])
		}
		So(chained, ShouldResemble, manual)
	})
}

func TestHashEncoding(t *testing.T) {
	var h = Keccak256H([]byte("jacogr"))

	Convey("string round trip", t, func() {
		h2, err := NewHashFromStr("0x" + h.String())
		So(err, ShouldBeNil)
		So(h2.IsEqual(&h), ShouldBeTrue)

		_, err = NewHashFromStr("abcd")
		So(err, ShouldEqual, ErrHashStrSize)

		_, err = NewHashFromStr(strings.Repeat("zz", HashSize))
		So(err, ShouldNotBeNil)
	})
	Convey("bytes", t, func() {
		h2, err := NewHash(h.Bytes())
		So(err, ShouldBeNil)
		So(*h2, ShouldResemble, h)
		_, err = NewHash([]byte{0})
		So(err, ShouldNotBeNil)
		So((*Hash)(nil).IsEqual(nil), ShouldBeTrue)
		So(h2.IsEqual(nil), ShouldBeFalse)
	})
	Convey("json", t, func() {
		enc, err := json.Marshal(h)
		So(err, ShouldBeNil)
		So(string(enc), ShouldEqual, `"`+h.String()+`"`)
		var h2 Hash
		So(json.Unmarshal(enc, &h2), ShouldBeNil)
		So(h2, ShouldResemble, h)
		So(json.Unmarshal([]byte("1"), &h2), ShouldNotBeNil)
	})
	Convey("yaml", t, func() {
		enc, err := yaml.Marshal(h)
		So(err, ShouldBeNil)
		var h2 Hash
		So(yaml.Unmarshal(enc, &h2), ShouldBeNil)
		So(h2, ShouldResemble, h)
	})
}
