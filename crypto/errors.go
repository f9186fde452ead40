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

// Package crypto holds the encoding conventions, address derivation and error
// taxonomy shared by the key derivation and keystore packages.
package crypto

import "github.com/pkg/errors"

var (
	// ErrInvalidEncoding indicates malformed hex or byte input, including a
	// value of the wrong length.
	ErrInvalidEncoding = errors.New("invalid encoding")

	// ErrInvalidKeyMaterial indicates a secret key outside the open interval
	// (0, curve order) or a public key that is not a curve point encoding.
	ErrInvalidKeyMaterial = errors.New("invalid key material")
)
