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
	"github.com/ethereum/go-ethereum/common"

	"github.com/CovenantSQL/ethkey/crypto"
	"github.com/CovenantSQL/ethkey/utils"
)

// Wallet is a derived key pair and its account address.
type Wallet struct {
	SecretKey []byte
	PublicKey []byte
	Address   common.Address
	// Attempts counts the search rounds after stretching.
	Attempts int
}

// HexWallet is the transport form of a Wallet.
type HexWallet struct {
	Secret  string `json:"secret"`
	Public  string `json:"public"`
	Address string `json:"address"`
}

// Hex encodes the wallet with the 0x lowercase hex convention.
func (w *Wallet) Hex() HexWallet {
	return HexWallet{
		Secret:  crypto.EncodeHex(w.SecretKey),
		Public:  crypto.EncodeHex(w.PublicKey),
		Address: crypto.AddressHex(w.Address),
	}
}

// Zero wipes the secret key, the wallet is unusable afterwards.
func (w *Wallet) Zero() {
	utils.Zero(w.SecretKey)
	w.SecretKey = nil
}
