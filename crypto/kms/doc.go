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

/*
Package kms implements the Web3 Secret Storage (version 3) key record, the
format produced by keythereum and geth.

A record is sealed as follows:

	dk         = KDF(password, salt)            pbkdf2-hmac-sha256 or scrypt
	ciphertext = AES-128-CTR(dk[0:16], iv, secret)
	mac        = Keccak256(dk[16:32] || ciphertext)

DumpKey builds the record from caller supplied salt and iv, EncryptKey draws
them from crypto/rand. DecryptKey opens records through the go-ethereum
keystore and reports every failure as ErrDecryptionFailure.
*/
package kms
