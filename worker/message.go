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

	"github.com/pkg/errors"

	"github.com/CovenantSQL/ethkey/crypto"
	"github.com/CovenantSQL/ethkey/metric"
	"github.com/CovenantSQL/ethkey/wallet"
)

// Action names an operation of the dispatch boundary.
type Action string

// Canonical actions.
const (
	ActionDeriveWallet    Action = "deriveWallet"
	ActionVerifySecretKey Action = "verifySecretKey"
	ActionEncryptKey      Action = "encryptKey"
	ActionDecryptKey      Action = "decryptKey"
)

// legacy names routed like their canonical counterparts
var legacyActions = map[Action]Action{
	"phraseToWallet":    ActionDeriveWallet,
	"verifySecret":      ActionVerifySecretKey,
	"createKeyObject":   ActionEncryptKey,
	"decryptPrivateKey": ActionDecryptKey,
}

// Canonical resolves legacy names and reports whether the action is known.
func (a Action) Canonical() (Action, bool) {
	switch a {
	case ActionDeriveWallet, ActionVerifySecretKey, ActionEncryptKey, ActionDecryptKey:
		return a, true
	}
	if c, ok := legacyActions[a]; ok {
		return c, true
	}
	return a, false
}

// Request is an action with its JSON payload.
type Request struct {
	Action  Action          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewRequest marshals payload into a request for action.
func NewRequest(action Action, payload interface{}) (req *Request, err error) {
	req = &Request{Action: action}
	if payload != nil {
		if req.Payload, err = json.Marshal(payload); err != nil {
			return nil, errors.Wrap(ErrInvalidPayload, err.Error())
		}
	}
	return
}

// EncryptKeyPayload is the payload of encryptKey.
type EncryptKeyPayload struct {
	Key      string `json:"key"`
	Password string `json:"password"`
}

// DecryptKeyPayload is the payload of decryptKey. KeyObject is a record
// object or a JSON string holding one.
type DecryptKeyPayload struct {
	KeyObject json.RawMessage `json:"keyObject"`
	Password  string          `json:"password"`
}

// Error codes carried by ResponseError.
const (
	CodeInvalidEncoding    = "InvalidEncoding"
	CodeInvalidKeyMaterial = "InvalidKeyMaterial"
	CodeDispatchFailure    = "DispatchFailure"
	CodeUnknownAction      = "UnknownAction"
	CodeSearchExhausted    = "SearchExhausted"
	CodeContextClosed      = "ContextClosed"
	CodeCancelled          = "Cancelled"
	CodeDeadlineExceeded   = "DeadlineExceeded"
)

var codeCauses = map[string]error{
	CodeInvalidEncoding:    crypto.ErrInvalidEncoding,
	CodeInvalidKeyMaterial: crypto.ErrInvalidKeyMaterial,
	CodeDispatchFailure:    ErrDispatchFailure,
	CodeUnknownAction:      ErrUnknownAction,
	CodeSearchExhausted:    wallet.ErrSearchExhausted,
	CodeContextClosed:      ErrContextClosed,
	CodeCancelled:          context.Canceled,
	CodeDeadlineExceeded:   context.DeadlineExceeded,
}

// ResponseError is the error side of a response envelope.
type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ResponseError) Error() string {
	return e.Code + ": " + e.Message
}

// Cause maps the code back to its sentinel so errors.Cause works across the
// envelope.
func (e *ResponseError) Cause() error {
	if cause, ok := codeCauses[e.Code]; ok {
		return cause
	}
	return ErrDispatchFailure
}

// NewResponseError classifies err into the error taxonomy.
func NewResponseError(err error) *ResponseError {
	if re, ok := err.(*ResponseError); ok {
		return re
	}
	code := CodeDispatchFailure
	switch errors.Cause(err) {
	case crypto.ErrInvalidEncoding, ErrInvalidPayload:
		code = CodeInvalidEncoding
	case crypto.ErrInvalidKeyMaterial:
		code = CodeInvalidKeyMaterial
	case ErrUnknownAction:
		code = CodeUnknownAction
	case wallet.ErrSearchExhausted:
		code = CodeSearchExhausted
	case ErrContextClosed:
		code = CodeContextClosed
	case context.Canceled:
		code = CodeCancelled
	case context.DeadlineExceeded:
		code = CodeDeadlineExceeded
	}
	return &ResponseError{Code: code, Message: err.Error()}
}

// Response carries exactly one of Result and Error. A nil Result with a nil
// Error is the absence value and marshals to {"result":null}.
type Response struct {
	Result interface{}
	Error  *ResponseError
}

// ResultResponse wraps a result value.
func ResultResponse(v interface{}) *Response {
	return &Response{Result: v}
}

// AbsentResponse returns the absence value.
func AbsentResponse() *Response {
	return &Response{}
}

// ErrorResponse wraps err.
func ErrorResponse(err error) *Response {
	return &Response{Error: NewResponseError(err)}
}

var jsonNull = []byte("null")

// Absent reports whether r is a null result.
func (r *Response) Absent() bool {
	if r.Error != nil {
		return false
	}
	if raw, ok := r.Result.(json.RawMessage); ok {
		return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), jsonNull)
	}
	return r.Result == nil
}

// Err returns the envelope error or nil.
func (r *Response) Err() error {
	if r.Error == nil {
		return nil
	}
	return r.Error
}

func (r *Response) outcome() string {
	switch {
	case r.Error != nil:
		return metric.OutcomeError
	case r.Absent():
		return metric.OutcomeAbsent
	default:
		return metric.OutcomeResult
	}
}

// Decode unmarshals the result into v. It returns false when the result is
// absent and the envelope error when there is one.
func (r *Response) Decode(v interface{}) (present bool, err error) {
	if r.Error != nil {
		return false, r.Error
	}
	if r.Absent() {
		return false, nil
	}
	data, ok := r.Result.(json.RawMessage)
	if !ok {
		if data, err = json.Marshal(r.Result); err != nil {
			return false, errors.Wrap(err, "marshal result failed")
		}
	}
	if err = json.Unmarshal(data, v); err != nil {
		return false, errors.Wrap(err, "unmarshal result failed")
	}
	return true, nil
}

// MarshalJSON emits {"error":{...}} or {"result":...}.
func (r *Response) MarshalJSON() ([]byte, error) {
	if r.Error != nil {
		return json.Marshal(struct {
			Error *ResponseError `json:"error"`
		}{r.Error})
	}
	if r.Absent() {
		return []byte(`{"result":null}`), nil
	}
	return json.Marshal(struct {
		Result interface{} `json:"result"`
	}{r.Result})
}

// UnmarshalJSON accepts only envelopes with exactly one of error and result.
func (r *Response) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return errors.Wrap(ErrInvalidPayload, err.Error())
	}
	errRaw, hasErr := m["error"]
	resRaw, hasRes := m["result"]
	if hasErr == hasRes {
		return errors.Wrap(ErrInvalidPayload, "response must carry exactly one of error and result")
	}

	*r = Response{}
	if hasErr {
		if bytes.Equal(bytes.TrimSpace(errRaw), jsonNull) {
			return errors.Wrap(ErrInvalidPayload, "null error")
		}
		r.Error = &ResponseError{}
		if err := json.Unmarshal(errRaw, r.Error); err != nil {
			return errors.Wrap(ErrInvalidPayload, err.Error())
		}
		return nil
	}
	if !bytes.Equal(bytes.TrimSpace(resRaw), jsonNull) {
		r.Result = resRaw
	}
	return nil
}
