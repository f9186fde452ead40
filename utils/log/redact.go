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
	"strings"

	"github.com/sirupsen/logrus"
)

// RedactedValue replaces the value of sensitive fields.
const RedactedValue = "[REDACTED]"

var (
	sensitiveKeyParts = []string{"secret", "password", "passphrase", "phrase", "key", "seed"}
	publicKeyParts    = []string{"address", "public"}
)

// RedactHook blanks out fields that look like they carry key material.
type RedactHook struct{}

// StandardRedactHook returns the redaction hook installed on the standard logger.
func StandardRedactHook() *RedactHook {
	return &RedactHook{}
}

// Levels define hook applicable level.
func (hook *RedactHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire defines hook event handler.
func (hook *RedactHook) Fire(entry *logrus.Entry) error {
	for k := range entry.Data {
		if IsSensitiveKey(k) {
			entry.Data[k] = RedactedValue
		}
	}
	return nil
}

// IsSensitiveKey reports whether a field named key must not be logged verbatim.
func IsSensitiveKey(key string) bool {
	lower := strings.ToLower(strings.TrimSpace(key))
	for _, part := range publicKeyParts {
		if strings.Contains(lower, part) {
			return false
		}
	}
	for _, part := range sensitiveKeyParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}
