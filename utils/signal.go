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

package utils

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"

	"github.com/CovenantSQL/ethkey/utils/log"
)

var (
	exitSignals   = []os.Signal{unix.SIGINT, unix.SIGTERM}
	ignoreSignals = []os.Signal{unix.SIGHUP, unix.SIGTTIN, unix.SIGTTOU}
)

// WaitForExit delivers the first SIGINT or SIGTERM. SIGHUP, SIGTTIN and
// SIGTTOU are ignored from the first call on so a detached daemon keeps
// running.
func WaitForExit() <-chan os.Signal {
	notifyCh := make(chan os.Signal, 1)
	signal.Notify(notifyCh, exitSignals...)
	signal.Ignore(ignoreSignals...)

	exitCh := make(chan os.Signal, 1)
	go func() {
		sig := <-notifyCh
		signal.Stop(notifyCh)
		log.WithField("signal", sig.String()).Info("received exit signal")
		exitCh <- sig
	}()
	return exitCh
}
