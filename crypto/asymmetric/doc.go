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
Package asymmetric implements the secp256k1 primitives needed to turn a 32
byte secret scalar into an account key pair.

Bitcoin and Ethereum use elliptic curve cryptography using koblitz curves
(specifically secp256k1). See http://www.secg.org/sec2-v2.pdf for details on
the standard.

Two interchangeable backends are provided behind the Curve interface, one on
github.com/ethereum/go-ethereum/crypto and one on github.com/btcsuite/btcd/btcec.
Both accept only scalars in the open interval (0, N) and encode public keys as
the 64 byte X||Y form, the 0x04 uncompressed format byte is stripped.
*/
package asymmetric
