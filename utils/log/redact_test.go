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

package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestIsSensitiveKey(t *testing.T) {
	Convey("sensitive field names", t, func() {
		for _, k := range []string{"secret", "SecretKey", "password", "phrase", "keyObject", " seed "} {
			So(IsSensitiveKey(k), ShouldBeTrue)
		}
		for _, k := range []string{"address", "publicKey", "action", "attempts", "kdf", ""} {
			So(IsSensitiveKey(k), ShouldBeFalse)
		}
	})
}

func TestRedactHook(t *testing.T) {
	Convey("redact hook rewrites sensitive fields before formatting", t, func() {
		var buf bytes.Buffer
		logger := logrus.New()
		logger.SetOutput(&buf)
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.AddHook(StandardRedactHook())

		logger.WithFields(logrus.Fields{
			"secret":   "0x1e7f30bb",
			"password": "hunter2",
			"address":  "0x0021f80b",
			"action":   "deriveWallet",
		}).Info("redact")

		var payload map[string]interface{}
		So(json.Unmarshal(buf.Bytes(), &payload), ShouldBeNil)
		So(payload["secret"], ShouldEqual, RedactedValue)
		So(payload["password"], ShouldEqual, RedactedValue)
		So(payload["address"], ShouldEqual, "0x0021f80b")
		So(payload["action"], ShouldEqual, "deriveWallet")
		So(buf.String(), ShouldNotContainSubstring, "hunter2")
	})
}
