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
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/CovenantSQL/ethkey/conf"
	"github.com/CovenantSQL/ethkey/crypto"
	"github.com/CovenantSQL/ethkey/crypto/asymmetric"
	"github.com/CovenantSQL/ethkey/crypto/kms"
	"github.com/CovenantSQL/ethkey/metric"
	"github.com/CovenantSQL/ethkey/utils"
	"github.com/CovenantSQL/ethkey/utils/log"
	"github.com/CovenantSQL/ethkey/utils/trace"
	"github.com/CovenantSQL/ethkey/wallet"
)

// unknownActionLabel keeps the metric label set bounded.
const unknownActionLabel = "unknown"

type handler func(ctx context.Context, payload json.RawMessage) (interface{}, error)

// Router maps actions to the engine operations. It holds no per request
// state and is safe for concurrent use.
type Router struct {
	curve       asymmetric.Curve
	maxAttempts int
	kdf         kms.Params
	strict      bool
	handlers    map[Action]handler
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithCurve selects the secp256k1 backend for derivation and verification.
func WithCurve(c asymmetric.Curve) RouterOption {
	return func(r *Router) {
		if c != nil {
			r.curve = c
		}
	}
}

// WithMaxAttempts caps derivation search rounds, 0 keeps it unbounded.
func WithMaxAttempts(n int) RouterOption {
	return func(r *Router) {
		r.maxAttempts = n
	}
}

// WithKDFParams selects the key derivation of new records.
func WithKDFParams(p kms.Params) RouterOption {
	return func(r *Router) {
		r.kdf = p
	}
}

// WithStrictActions turns unknown actions into ErrUnknownAction envelopes.
func WithStrictActions(strict bool) RouterOption {
	return func(r *Router) {
		r.strict = strict
	}
}

// NewRouter returns a router with the default curve and keythereum kdf
// parameters.
func NewRouter(opts ...RouterOption) *Router {
	r := &Router{
		curve: asymmetric.DefaultCurve,
		kdf:   kms.StandardParams(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.handlers = map[Action]handler{
		ActionDeriveWallet:    r.deriveWallet,
		ActionVerifySecretKey: r.verifySecretKey,
		ActionEncryptKey:      r.encryptKey,
		ActionDecryptKey:      r.decryptKey,
	}
	return r
}

// NewRouterFromConfig builds a router from the derive, keystore and worker
// sections of cfg.
func NewRouterFromConfig(cfg *conf.Config) (r *Router, err error) {
	if err = cfg.Validate(); err != nil {
		return
	}
	curve, err := cfg.Curve()
	if err != nil {
		return
	}
	return NewRouter(
		WithCurve(curve),
		WithMaxAttempts(cfg.Derive.MaxAttempts),
		WithKDFParams(cfg.KDFParams()),
		WithStrictActions(cfg.Worker.StrictActions),
	), nil
}

// Route runs req synchronously and always returns an envelope. Faults,
// panics included, never escape.
func (r *Router) Route(ctx context.Context, req *Request) (resp *Response) {
	var (
		start = time.Now()
		label = unknownActionLabel
		known bool
		act   Action
	)
	if req != nil {
		if act, known = req.Action.Canonical(); known {
			label = string(act)
		}
	}

	ctx, task := trace.NewTask(ctx, "ethkey.dispatch")
	defer task.End()
	trace.Log(ctx, "action", label)

	defer func() {
		if p := recover(); p != nil {
			log.WithField("action", label).Errorf("recovered from dispatch panic: %v", p)
			resp = ErrorResponse(errors.Wrapf(ErrDispatchFailure, "panic: %v", p))
		}
		metric.ObserveDispatch(label, resp.outcome(), time.Since(start))
	}()

	if req == nil {
		return ErrorResponse(errors.Wrap(ErrInvalidPayload, "nil request"))
	}
	if err := ctx.Err(); err != nil {
		return ErrorResponse(errors.Wrap(err, "request expired before dispatch"))
	}
	if !known {
		if r.strict {
			return ErrorResponse(errors.Wrapf(ErrUnknownAction, "action %q", req.Action))
		}
		log.WithField("action", string(req.Action)).Debug("unknown action, result is null")
		return AbsentResponse()
	}

	result, err := r.handlers[act](ctx, req.Payload)
	if err != nil {
		if errors.Cause(err) == kms.ErrDecryptionFailure {
			return AbsentResponse()
		}
		log.WithError(err).WithField("action", label).Debug("dispatch failed")
		return ErrorResponse(err)
	}
	return ResultResponse(result)
}

func decodePayload(payload json.RawMessage, v interface{}) error {
	if len(payload) == 0 {
		return errors.Wrap(ErrInvalidPayload, "missing payload")
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return errors.Wrap(ErrInvalidPayload, err.Error())
	}
	return nil
}

func (r *Router) deriveWallet(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var phrase string
	if err := decodePayload(payload, &phrase); err != nil {
		return nil, err
	}
	w, err := wallet.Derive(ctx, []byte(phrase),
		wallet.WithCurve(r.curve), wallet.WithMaxAttempts(r.maxAttempts))
	if err != nil {
		return nil, err
	}
	defer w.Zero()
	metric.DeriveAttempts.Observe(float64(w.Attempts))
	return w.Hex(), nil
}

func (r *Router) verifySecretKey(_ context.Context, payload json.RawMessage) (interface{}, error) {
	var secretHex string
	if err := decodePayload(payload, &secretHex); err != nil {
		return nil, err
	}
	return wallet.Verify(secretHex, r.curve)
}

func (r *Router) encryptKey(_ context.Context, payload json.RawMessage) (interface{}, error) {
	var p EncryptKeyPayload
	if err := decodePayload(payload, &p); err != nil {
		return nil, err
	}
	sk, err := crypto.DecodeSecretKey(p.Key)
	if err != nil {
		return nil, err
	}
	password := []byte(p.Password)
	defer utils.ZeroAll(sk, password)
	record, err := kms.EncryptKey(sk, password, r.kdf)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(record), nil
}

func (r *Router) decryptKey(_ context.Context, payload json.RawMessage) (interface{}, error) {
	var p DecryptKeyPayload
	if err := decodePayload(payload, &p); err != nil {
		return nil, err
	}
	record := []byte(p.KeyObject)
	if trimmed := bytes.TrimSpace(record); len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, errors.Wrap(ErrInvalidPayload, err.Error())
		}
		record = []byte(s)
	}
	password := []byte(p.Password)
	defer utils.Zero(password)
	secret, err := kms.DecryptKey(record, password)
	if err != nil {
		return nil, err
	}
	defer utils.Zero(secret)
	return crypto.EncodeHex(secret), nil
}
