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
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/sourcegraph/jsonrpc2"
	wsstream "github.com/sourcegraph/jsonrpc2/websocket"

	"github.com/CovenantSQL/ethkey/conf"
	"github.com/CovenantSQL/ethkey/metric"
	"github.com/CovenantSQL/ethkey/utils/log"
)

// HealthPath answers GET with 200 while the server accepts connections.
const HealthPath = "/healthz"

type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	log.Error(v...)
}

// WebsocketServer is a websocket server providing JSON-RPC API service.
type WebsocketServer struct {
	http.Server
	RPCHandler jsonrpc2.Handler

	mu       sync.Mutex
	listener net.Listener
	conns    map[*websocket.Conn]struct{}
}

// Listen binds ws.Addr and returns the bound address, so ":0" works.
func (ws *WebsocketServer) Listen() (addr net.Addr, err error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.listener != nil {
		return ws.listener.Addr(), nil
	}
	if ws.listener, err = net.Listen("tcp", ws.Addr); err != nil {
		return nil, errors.Wrapf(err, "couldn't bind to address %q", ws.Addr)
	}
	return ws.listener.Addr(), nil
}

// Serve accepts incoming connections and serves each, binding first if
// Listen was not called.
func (ws *WebsocketServer) Serve() error {
	if ws.RPCHandler == nil {
		return errors.New("jsonrpc: nil rpc handler")
	}
	if _, err := ws.Listen(); err != nil {
		return err
	}

	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	router := mux.NewRouter()
	router.HandleFunc(HealthPath, func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	router.PathPrefix("/").HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(rw, r, nil)
		if err != nil {
			log.WithError(err).Error("jsonrpc: upgrade http connection to websocket failed")
			return
		}
		if !ws.track(conn) {
			conn.Close()
			return
		}
		defer ws.untrack(conn)

		metric.RPCConnections.Inc()
		defer metric.RPCConnections.Dec()

		// requests on one connection run concurrently and are cancelled
		// when the peer goes away
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		<-jsonrpc2.NewConn(
			ctx,
			wsstream.NewObjectStream(conn),
			jsonrpc2.AsyncHandler(ws.RPCHandler),
		).DisconnectNotify()
	})

	ws.mu.Lock()
	ws.Handler = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{}))(router)
	ln := ws.listener
	ws.mu.Unlock()

	log.WithField("addr", ln.Addr().String()).Info("jsonrpc: websocket server started")
	if err := ws.Server.Serve(ln); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (ws *WebsocketServer) track(conn *websocket.Conn) bool {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.listener == nil {
		return false
	}
	if ws.conns == nil {
		ws.conns = make(map[*websocket.Conn]struct{})
	}
	ws.conns[conn] = struct{}{}
	return true
}

func (ws *WebsocketServer) untrack(conn *websocket.Conn) {
	ws.mu.Lock()
	delete(ws.conns, conn)
	ws.mu.Unlock()
	conn.Close()
}

// Shutdown stops accepting connections and closes the open ones.
func (ws *WebsocketServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), conf.ShutdownTimeout)
	defer cancel()

	ws.mu.Lock()
	ws.listener = nil
	for conn := range ws.conns {
		conn.Close()
	}
	ws.mu.Unlock()

	return ws.Server.Shutdown(ctx)
}
