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

package internal

import (
	"context"
	"net/http"

	"github.com/CovenantSQL/ethkey/conf"
	"github.com/CovenantSQL/ethkey/metric"
	"github.com/CovenantSQL/ethkey/rpc/jsonrpc"
	"github.com/CovenantSQL/ethkey/utils"
	"github.com/CovenantSQL/ethkey/utils/trace"
	// log level switch on the metric web
	_ "github.com/CovenantSQL/ethkey/utils/log/debug"
	"github.com/CovenantSQL/ethkey/worker"
)

// CmdServe is ethkey serve command entity.
var CmdServe = &Command{
	UsageLine: "ethkey serve [common params] [-wsapi address] [-metric-web address] [-cpu-profile file] [-mem-profile file] [-trace-file file]",
	Short:     "serve the ethkey JSON-RPC methods over websocket",
	Long: `
Serve exposes ethkey_deriveWallet, ethkey_verifySecretKey, ethkey_encryptKey
and ethkey_decryptKey as JSON-RPC 2.0 methods over websocket until SIGINT or
SIGTERM. Flags override WSAPIAddr and MetricWeb of the config file.
e.g.
    ethkey serve -wsapi 127.0.0.1:8546 -metric-web 127.0.0.1:8547
`,
}

var (
	wsapiAddr  string
	metricWeb  string
	cpuProfile string
	memProfile string
	traceFile  string
)

func init() {
	CmdServe.Run = runServe

	addCommonFlags(CmdServe)
	CmdServe.Flag.StringVar(&wsapiAddr, "wsapi", "", "Address of the websocket JSON-RPC API")
	CmdServe.Flag.StringVar(&metricWeb, "metric-web", "", "Address of the metrics and debug web")
	CmdServe.Flag.StringVar(&cpuProfile, "cpu-profile", "", "Path to file for CPU profiling information")
	CmdServe.Flag.StringVar(&memProfile, "mem-profile", "", "Path to file for memory profiling information")
	CmdServe.Flag.StringVar(&traceFile, "trace-file", "", "Path to file for execution trace of dispatched requests")
}

// server holds what runServe started, stop releases it in reverse order.
type server struct {
	ec     worker.ExecContext
	ws     *jsonrpc.WebsocketServer
	wsAddr string
	metric *http.Server
}

func startServer(cfg *conf.Config) (s *server, err error) {
	s = &server{}
	if s.ec, err = worker.NewExecContext(cfg); err != nil {
		return nil, err
	}

	if cfg.MetricWeb != "" {
		if s.metric, err = metric.InitMetricWeb(cfg.MetricWeb); err != nil {
			s.stop()
			return nil, err
		}
	}

	h := jsonrpc.NewHandler()
	jsonrpc.RegisterEthkey(h, s.ec)
	s.ws = &jsonrpc.WebsocketServer{RPCHandler: h}
	s.ws.Addr = cfg.WSAPIAddr
	addr, err := s.ws.Listen()
	if err != nil {
		s.ws = nil
		s.stop()
		return nil, err
	}
	s.wsAddr = addr.String()
	go func() {
		if err := s.ws.Serve(); err != nil {
			ConsoleLog.WithError(err).Error("websocket server stopped")
		}
	}()
	return
}

func (s *server) stop() {
	if s.ws != nil {
		if err := s.ws.Shutdown(); err != nil {
			ConsoleLog.WithError(err).Warning("shutdown websocket server failed")
		}
	}
	if s.metric != nil {
		ctx, cancel := context.WithTimeout(context.Background(), conf.ShutdownTimeout)
		defer cancel()
		if err := s.metric.Shutdown(ctx); err != nil {
			ConsoleLog.WithError(err).Warning("shutdown metric web failed")
		}
	}
	if s.ec != nil {
		s.ec.Close()
	}
}

func runServe(cmd *Command, args []string) {
	configInit()
	ExitIfErrors()

	cfg := conf.GConf.Clone()
	if wsapiAddr != "" {
		cfg.WSAPIAddr = wsapiAddr
	}
	if metricWeb != "" {
		cfg.MetricWeb = metricWeb
	}
	if cfg.WSAPIAddr == "" {
		ConsoleLog.Error("Serve command needs -wsapi or WSAPIAddr in config")
		SetExitStatus(1)
		return
	}

	if err := utils.StartProfile(cpuProfile, memProfile); err != nil {
		SetExitStatus(1)
		return
	}
	defer utils.StopProfile()
	if err := trace.Start(traceFile); err != nil {
		ConsoleLog.WithError(err).Error("start execution trace failed")
		SetExitStatus(1)
		return
	}
	defer trace.Stop()

	s, err := startServer(cfg)
	if err != nil {
		ConsoleLog.WithError(err).Error("start ethkey server failed")
		SetExitStatus(1)
		return
	}
	defer func() {
		s.stop()
		ConsoleLog.Info("stopped ethkey server")
	}()

	ConsoleLog.Printf("Ctrl + C to stop ethkey server on %s", s.wsAddr)
	<-utils.WaitForExit()
}
