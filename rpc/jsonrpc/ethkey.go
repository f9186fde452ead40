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

package jsonrpc

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/CovenantSQL/ethkey/worker"
)

// JSON-RPC method names of the ethkey service.
const (
	MethodDeriveWallet    = "ethkey_deriveWallet"
	MethodVerifySecretKey = "ethkey_verifySecretKey"
	MethodEncryptKey      = "ethkey_encryptKey"
	MethodDecryptKey      = "ethkey_decryptKey"
)

// CodeEthkeyError is the JSON-RPC error code of a failed ethkey action, the
// envelope error travels in the error data.
const CodeEthkeyError int64 = -32000

// DeriveWalletParams is [phrase].
type DeriveWalletParams struct {
	Phrase string
}

// VerifySecretKeyParams is [secret].
type VerifySecretKeyParams struct {
	Secret string
}

// EncryptKeyParams is [key, password].
type EncryptKeyParams struct {
	Key      string
	Password string
}

// Validate implements Validator.
func (p *EncryptKeyParams) Validate() error {
	if p.Key == "" {
		return errors.New("key is required")
	}
	return nil
}

// DecryptKeyParams is [keyObject, password].
type DecryptKeyParams struct {
	KeyObject json.RawMessage
	Password  string
}

// Validate implements Validator.
func (p *DecryptKeyParams) Validate() error {
	if len(p.KeyObject) == 0 {
		return errors.New("keyObject is required")
	}
	return nil
}

// RegisterEthkey registers the ethkey methods on h, each one a single
// request through ec.
func RegisterEthkey(h *Handler, ec worker.ExecContext) {
	s := &ethkeyService{client: worker.NewClient(ec)}
	h.RegisterMethod(MethodDeriveWallet, s.deriveWallet, DeriveWalletParams{})
	h.RegisterMethod(MethodVerifySecretKey, s.verifySecretKey, VerifySecretKeyParams{})
	h.RegisterMethod(MethodEncryptKey, s.encryptKey, EncryptKeyParams{})
	h.RegisterMethod(MethodDecryptKey, s.decryptKey, DecryptKeyParams{})
}

type ethkeyService struct {
	client *worker.Client
}

func (s *ethkeyService) call(ctx context.Context, action worker.Action, payload interface{}) (
	result interface{}, err error,
) {
	req, err := worker.NewRequest(action, payload)
	if err != nil {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
	}
	resp, err := s.client.Call(ctx, req)
	if err != nil {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: err.Error()}
	}
	if resp.Error != nil {
		return nil, toRPCError(resp.Error)
	}
	return resp.Result, nil
}

func toRPCError(re *worker.ResponseError) *jsonrpc2.Error {
	code := CodeEthkeyError
	if re.Code == worker.CodeInvalidEncoding {
		code = jsonrpc2.CodeInvalidParams
	}
	e := &jsonrpc2.Error{Code: code, Message: re.Message}
	e.SetError(re)
	return e
}

func (s *ethkeyService) deriveWallet(ctx context.Context, _ *jsonrpc2.Conn, _ *jsonrpc2.Request) (
	interface{}, error,
) {
	params := ParamsFromContext(ctx).(*DeriveWalletParams)
	return s.call(ctx, worker.ActionDeriveWallet, params.Phrase)
}

func (s *ethkeyService) verifySecretKey(ctx context.Context, _ *jsonrpc2.Conn, _ *jsonrpc2.Request) (
	interface{}, error,
) {
	params := ParamsFromContext(ctx).(*VerifySecretKeyParams)
	return s.call(ctx, worker.ActionVerifySecretKey, params.Secret)
}

func (s *ethkeyService) encryptKey(ctx context.Context, _ *jsonrpc2.Conn, _ *jsonrpc2.Request) (
	interface{}, error,
) {
	params := ParamsFromContext(ctx).(*EncryptKeyParams)
	return s.call(ctx, worker.ActionEncryptKey, &worker.EncryptKeyPayload{
		Key:      params.Key,
		Password: params.Password,
	})
}

func (s *ethkeyService) decryptKey(ctx context.Context, _ *jsonrpc2.Conn, _ *jsonrpc2.Request) (
	interface{}, error,
) {
	params := ParamsFromContext(ctx).(*DecryptKeyParams)
	return s.call(ctx, worker.ActionDecryptKey, &worker.DecryptKeyPayload{
		KeyObject: params.KeyObject,
		Password:  params.Password,
	})
}
