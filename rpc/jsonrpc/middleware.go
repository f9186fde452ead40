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
	"fmt"
	"reflect"

	"github.com/sourcegraph/jsonrpc2"
)

type paramsKey struct{}

// Validator is designed for params checking.
type Validator interface {
	Validate() error
}

// ParamsFromContext returns the decoded params struct pointer of the
// current call.
func ParamsFromContext(ctx context.Context) interface{} {
	return ctx.Value(paramsKey{})
}

// processParams unmarshals the JSON array in req.Params into the fields of a
// new paramsType value, e.g. ["0x..", "pw"] --> struct{ Key, Password }.
func processParams(h HandlerFunc, paramsType reflect.Type) HandlerFunc {
	return func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (
		result interface{}, err error,
	) {
		paramsNew := reflect.New(paramsType)
		paramsElem := paramsNew.Elem()
		paramsArray := make([]interface{}, paramsElem.NumField())
		for i := 0; i < paramsElem.NumField(); i++ {
			paramsArray[i] = paramsElem.Field(i).Addr().Interface()
		}

		if err := json.Unmarshal(*req.Params, &paramsArray); err != nil {
			return nil, &jsonrpc2.Error{
				Code:    jsonrpc2.CodeInvalidParams,
				Message: err.Error(),
			}
		}

		if len(paramsArray) != paramsElem.NumField() {
			return nil, &jsonrpc2.Error{
				Code: jsonrpc2.CodeInvalidParams,
				Message: fmt.Sprintf("unexpected parameters, expected %d but got %d",
					paramsElem.NumField(), len(paramsArray)),
			}
		}

		params := paramsNew.Interface()
		if t, ok := params.(Validator); ok {
			if err := t.Validate(); err != nil {
				return nil, &jsonrpc2.Error{
					Code:    jsonrpc2.CodeInvalidParams,
					Message: err.Error(),
				}
			}
		}

		return h(context.WithValue(ctx, paramsKey{}, params), conn, req)
	}
}
