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

	"github.com/pkg/errors"

	"github.com/CovenantSQL/ethkey/wallet"
)

// Client issues typed calls through an execution context.
type Client struct {
	ec ExecContext
}

// NewClient wraps ec.
func NewClient(ec ExecContext) *Client {
	return &Client{ec: ec}
}

// Call posts req and waits for its envelope or ctx.
func (c *Client) Call(ctx context.Context, req *Request) (resp *Response, err error) {
	select {
	case resp = <-c.ec.Post(ctx, req):
		return
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "wait for response")
	}
}

func (c *Client) call(ctx context.Context, action Action, payload interface{}, result interface{}) (present bool, err error) {
	req, err := NewRequest(action, payload)
	if err != nil {
		return
	}
	resp, err := c.Call(ctx, req)
	if err != nil {
		return
	}
	return resp.Decode(result)
}

// DeriveWallet derives the wallet of phrase.
func (c *Client) DeriveWallet(ctx context.Context, phrase string) (w *wallet.HexWallet, err error) {
	w = &wallet.HexWallet{}
	if _, err = c.call(ctx, ActionDeriveWallet, phrase, w); err != nil {
		return nil, err
	}
	return
}

// VerifySecretKey reports whether secretHex is a valid secret key.
func (c *Client) VerifySecretKey(ctx context.Context, secretHex string) (ok bool, err error) {
	_, err = c.call(ctx, ActionVerifySecretKey, secretHex, &ok)
	return
}

// EncryptKey wraps secretHex into a keystore record.
func (c *Client) EncryptKey(ctx context.Context, secretHex, password string) (record json.RawMessage, err error) {
	_, err = c.call(ctx, ActionEncryptKey, &EncryptKeyPayload{Key: secretHex, Password: password}, &record)
	return
}

// DecryptKey recovers the hex secret of record. A wrong password or a corrupt
// record returns nil, nil.
func (c *Client) DecryptKey(ctx context.Context, record json.RawMessage, password string) (secretHex *string, err error) {
	var s string
	present, err := c.call(ctx, ActionDecryptKey, &DecryptKeyPayload{KeyObject: record, Password: password}, &s)
	if err != nil || !present {
		return nil, err
	}
	return &s, nil
}
