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

package jsonrpc_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/sourcegraph/jsonrpc2"
	wsstream "github.com/sourcegraph/jsonrpc2/websocket"

	"github.com/CovenantSQL/ethkey/crypto/kms"
	"github.com/CovenantSQL/ethkey/rpc/jsonrpc"
	"github.com/CovenantSQL/ethkey/worker"
)

const (
	testPhrase  = "jacogr"
	testSecret  = "0x4dfc66dd28c95990ce6bc53fcc01b039d7a3db48fb5ecb59fb0e3fe3feec9cf0"
	testAddress = "0x00feb1005c11a5e63af826bb8d803d69d0caeab3"
)

var (
	echoHandler = func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (
		result interface{}, err error,
	) {
		return req.Params, nil
	}

	incHandler = func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (
		result interface{}, err error,
	) {
		params := jsonrpc.ParamsFromContext(ctx).(*incPayload)
		return params.Number + 1, nil
	}

	panicHandler = func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (
		result interface{}, err error,
	) {
		panic("boom")
	}
)

type incPayload struct {
	Number int `json:"number"`
}

func (p *incPayload) Validate() error {
	if p.Number < 0 {
		return errors.New("invalid number")
	}
	return nil
}

func rpcCode(err error) int64 {
	if e, ok := err.(*jsonrpc2.Error); ok {
		return e.Code
	}
	return 0
}

func TestRegisterMethod(t *testing.T) {
	h := jsonrpc.NewHandler()
	Convey("RegisterMethod", t, func() {
		var testCases = []struct {
			name        string
			method      string
			handlerFunc jsonrpc.HandlerFunc
			paramsType  interface{}
			willPanic   bool
		}{
			{name: "register a nil HandlerFunc", method: "nil"},
			{name: "register method with nil params type", method: "echo", handlerFunc: echoHandler},
			{name: "register method with params type (elem)", method: "inc", handlerFunc: incHandler, paramsType: incPayload{}},
			{name: "register method with params type (pointer)", method: "another_inc", handlerFunc: incHandler, paramsType: new(incPayload)},
			{name: "should panic on duplicated registration", method: "echo", handlerFunc: echoHandler, willPanic: true},
		}

		for i, c := range testCases {
			Convey(fmt.Sprintf("case#%d: %s", i, c.name), FailureContinues, func() {
				opAssert := ShouldNotPanic
				if c.willPanic {
					opAssert = ShouldPanic
				}
				So(func() {
					h.RegisterMethod(c.method, c.handlerFunc, c.paramsType)
				}, opAssert)
			})
		}
	})

	Convey("RegisterEthkey", t, func() {
		h := jsonrpc.NewHandler()
		ec := worker.NewEmulatedContext(nil)
		defer ec.Close()
		registerEthkey := func() {
			jsonrpc.RegisterEthkey(h, ec)
		}
		So(registerEthkey, ShouldNotPanic)
		So(h.Methods(), ShouldContain, jsonrpc.MethodDecryptKey)
		So(registerEthkey, ShouldPanic)
	})
}

func startServer(h *jsonrpc.Handler) (server *jsonrpc.WebsocketServer, client *jsonrpc2.Conn, err error) {
	server = &jsonrpc.WebsocketServer{RPCHandler: h}
	server.Addr = "127.0.0.1:0"
	addr, err := server.Listen()
	if err != nil {
		return
	}
	go server.Serve()
	client, err = setupWebsocketClient("ws://" + addr.String())
	return
}

func TestWebsocketServer(t *testing.T) {
	Convey("binding an invalid address fails", t, func() {
		server := &jsonrpc.WebsocketServer{RPCHandler: jsonrpc.NewHandler()}
		server.Addr = ":999999"
		So(server.Serve(), ShouldBeError)
		So((&jsonrpc.WebsocketServer{}).Serve(), ShouldBeError)
	})

	Convey("handlers and middlewares over websocket", t, func() {
		h := jsonrpc.NewHandler()
		h.RegisterMethod("nil", nil, nil)
		h.RegisterMethod("echo", echoHandler, nil)
		h.RegisterMethod("inc", incHandler, incPayload{})
		h.RegisterMethod("panic", panicHandler, nil)

		server, client, err := startServer(h)
		So(err, ShouldBeNil)
		defer server.Shutdown()
		defer client.Close()

		var testCases = []struct {
			name           string
			method         string
			params         interface{}
			expectedCode   int64
			expectedResult interface{}
		}{
			{name: "nil handler is an internal error", method: "nil", params: []int{}, expectedCode: jsonrpc2.CodeInternalError},
			{name: "unknown method should not be found", method: "unknown", params: []int{}, expectedCode: jsonrpc2.CodeMethodNotFound},
			{name: "echo method should work", method: "echo", params: "hello", expectedResult: "hello"},
			{name: "inc method should work", method: "inc", params: []interface{}{10}, expectedResult: float64(11)},
			{name: "unmarshal error", method: "inc", params: []interface{}{"not a number"}, expectedCode: jsonrpc2.CodeInvalidParams},
			{name: "incorrect fields", method: "inc", params: []interface{}{10, 11}, expectedCode: jsonrpc2.CodeInvalidParams},
			{name: "validation error", method: "inc", params: []interface{}{-1}, expectedCode: jsonrpc2.CodeInvalidParams},
			{name: "panics are recovered", method: "panic", params: []int{}, expectedCode: jsonrpc2.CodeInternalError},
		}

		for i, c := range testCases {
			var result interface{}
			err := client.Call(context.Background(), c.method, c.params, &result)
			if c.expectedCode != 0 {
				So(err, ShouldBeError)
				So(rpcCode(err), ShouldEqual, c.expectedCode)
			} else {
				So(err, ShouldBeNil)
				So(result, ShouldResemble, c.expectedResult)
			}
			t.Logf("case#%d: %s: %v", i, c.name, err)
		}
	})
}

func TestConnConcurrency(t *testing.T) {
	Convey("a blocked request does not hold up later ones on the same connection", t, func() {
		var (
			started = make(chan struct{})
			release = make(chan struct{})
		)
		h := jsonrpc.NewHandler()
		h.RegisterMethod("echo", echoHandler, nil)
		h.RegisterMethod("block", func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (
			result interface{}, err error,
		) {
			close(started)
			<-release
			return "released", nil
		}, nil)

		server, client, err := startServer(h)
		So(err, ShouldBeNil)
		defer server.Shutdown()
		defer client.Close()

		blockDone := make(chan error, 1)
		go func() {
			var result string
			blockDone <- client.Call(context.Background(), "block", []int{}, &result)
		}()
		<-started

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		var result string
		So(client.Call(ctx, "echo", "hello", &result), ShouldBeNil)
		So(result, ShouldEqual, "hello")

		var early bool
		select {
		case <-blockDone:
			early = true
		default:
		}
		So(early, ShouldBeFalse)
		close(release)
		So(<-blockDone, ShouldBeNil)
	})

	Convey("disconnecting cancels in-flight requests", t, func() {
		var (
			started   = make(chan struct{})
			cancelled = make(chan struct{})
		)
		h := jsonrpc.NewHandler()
		h.RegisterMethod("wait", func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (
			result interface{}, err error,
		) {
			close(started)
			<-ctx.Done()
			close(cancelled)
			return nil, ctx.Err()
		}, nil)

		server, client, err := startServer(h)
		So(err, ShouldBeNil)
		defer server.Shutdown()

		go func() {
			var result interface{}
			_ = client.Call(context.Background(), "wait", []int{}, &result)
		}()
		<-started
		So(client.Close(), ShouldBeNil)

		var ok bool
		select {
		case <-cancelled:
			ok = true
		case <-time.After(5 * time.Second):
		}
		So(ok, ShouldBeTrue)
	})
}

func TestHealthCheck(t *testing.T) {
	Convey("health path answers plain GET", t, func() {
		server := &jsonrpc.WebsocketServer{RPCHandler: jsonrpc.NewHandler()}
		server.Addr = "127.0.0.1:0"
		addr, err := server.Listen()
		So(err, ShouldBeNil)
		go server.Serve()
		defer server.Shutdown()

		var resp *http.Response
		for i := 0; i < 10; i++ {
			if resp, err = http.Get("http://" + addr.String() + jsonrpc.HealthPath); err == nil {
				break
			}
			time.Sleep(50 * time.Millisecond)
		}
		So(err, ShouldBeNil)
		resp.Body.Close()
		So(resp.StatusCode, ShouldEqual, http.StatusOK)
	})
}

func TestEthkeyService(t *testing.T) {
	Convey("ethkey methods over websocket", t, func() {
		ec := worker.NewPoolContext(worker.NewRouter(worker.WithKDFParams(kms.Params{
			KDF: kms.KDFPBKDF2, C: 1024, DKLen: kms.DerivedKeyLength,
		})), 2, 4)
		defer ec.Close()

		h := jsonrpc.NewHandler()
		jsonrpc.RegisterEthkey(h, ec)
		server, client, err := startServer(h)
		So(err, ShouldBeNil)
		defer server.Shutdown()
		defer client.Close()

		ctx := context.Background()
		var w struct {
			Secret  string `json:"secret"`
			Address string `json:"address"`
		}
		So(client.Call(ctx, jsonrpc.MethodDeriveWallet, []string{testPhrase}, &w), ShouldBeNil)
		So(w.Secret, ShouldEqual, testSecret)
		So(w.Address, ShouldEqual, testAddress)

		var ok bool
		So(client.Call(ctx, jsonrpc.MethodVerifySecretKey, []string{testSecret}, &ok), ShouldBeNil)
		So(ok, ShouldBeTrue)

		err = client.Call(ctx, jsonrpc.MethodVerifySecretKey, []string{"0xzz"}, &ok)
		So(rpcCode(err), ShouldEqual, jsonrpc2.CodeInvalidParams)

		var record json.RawMessage
		So(client.Call(ctx, jsonrpc.MethodEncryptKey, []string{testSecret, "pw"}, &record), ShouldBeNil)
		So(json.Valid(record), ShouldBeTrue)

		var secret *string
		So(client.Call(ctx, jsonrpc.MethodDecryptKey, []interface{}{record, "pw"}, &secret), ShouldBeNil)
		So(secret, ShouldNotBeNil)
		So(*secret, ShouldEqual, testSecret)

		secret = nil
		So(client.Call(ctx, jsonrpc.MethodDecryptKey, []interface{}{record, "wrong"}, &secret), ShouldBeNil)
		So(secret, ShouldBeNil)

		err = client.Call(ctx, jsonrpc.MethodEncryptKey, []string{"", "pw"}, &record)
		So(rpcCode(err), ShouldEqual, jsonrpc2.CodeInvalidParams)
	})
}

func setupWebsocketClient(addr string) (client *jsonrpc2.Conn, err error) {
	var dial = func(ctx context.Context, addr string) (client *jsonrpc2.Conn, err error) {
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, addr, nil)
		if err != nil {
			return nil, err
		}
		return jsonrpc2.NewConn(
			context.Background(),
			wsstream.NewObjectStream(conn),
			nil,
		), nil
	}

	for i := 0; i < 3; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		client, err = dial(ctx, addr)
		cancel()
		if err == nil {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	return client, err
}
