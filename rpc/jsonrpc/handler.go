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

// Package jsonrpc exposes the dispatch boundary as a JSON-RPC 2.0 service
// over websocket.
package jsonrpc

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/CovenantSQL/ethkey/utils/log"
)

// HandlerFunc is a function adapter to Handler.
type HandlerFunc func(context.Context, *jsonrpc2.Conn, *jsonrpc2.Request) (interface{}, error)

// Handler is a handler handling JSON-RPC protocol.
type Handler struct {
	mu      sync.RWMutex
	methods map[string]HandlerFunc
}

// NewHandler creates a new JSONRPCHandler.
func NewHandler() *Handler {
	return &Handler{
		methods: make(map[string]HandlerFunc),
	}
}

// RegisterMethod registers a method. A non nil paramsType is the struct the
// positional params array is decoded into, see ParamsFromContext.
func (h *Handler) RegisterMethod(method string, handlerFunc HandlerFunc, paramsType interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.methods[method]; ok {
		panic(fmt.Sprintf("method %q already registered", method))
	}

	if paramsType == nil || handlerFunc == nil {
		h.methods[method] = handlerFunc
		return
	}

	typ := reflect.TypeOf(paramsType)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	h.methods[method] = processParams(handlerFunc, typ)
}

// Methods returns the registered method names.
func (h *Handler) Methods() (names []string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for name := range h.methods {
		names = append(names, name)
	}
	return
}

// Handle implements jsonrpc2.Handler.
func (h *Handler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	jsonrpc2.HandlerWithError(h.handle).Handle(ctx, conn, req)
}

func (h *Handler) handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (
	result interface{}, err error,
) {
	defer func() {
		if p := recover(); p != nil {
			log.WithField("method", req.Method).Errorf("jsonrpc: recovered from handler panic: %v", p)
			err = &jsonrpc2.Error{
				Code:    jsonrpc2.CodeInternalError,
				Message: fmt.Sprintf("%v", p),
			}
		}
	}()

	h.mu.RLock()
	fn, ok := h.methods[req.Method]
	h.mu.RUnlock()
	if !ok {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	} else if fn == nil {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: "nil handler"}
	} else if req.Params == nil {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "missing params"}
	}

	return fn(ctx, conn, req)
}
