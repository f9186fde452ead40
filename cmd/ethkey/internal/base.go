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
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/CovenantSQL/ethkey/conf"
	"github.com/CovenantSQL/ethkey/utils"
	"github.com/CovenantSQL/ethkey/utils/log"
	"github.com/CovenantSQL/ethkey/worker"
)

var (
	// ConsoleLog is logging for console.
	ConsoleLog *logrus.Logger

	// output receives command results, tests swap it.
	output io.Writer = os.Stdout
	// input backs password prompts when stdin is not a terminal.
	input = bufio.NewReader(os.Stdin)
)

func init() {
	ConsoleLog = logrus.New()
	ConsoleLog.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	ConsoleLog.Out = os.Stderr
}

// These are general flags used by every command.
var (
	configFile      string
	password        string
	consoleLogLevel string
	timeout         time.Duration
)

func addCommonFlags(cmd *Command) {
	cmd.Flag.StringVar(&configFile, "config", conf.DefaultConfigFile, "Config file for ethkey, defaults apply if it does not exist")
	cmd.Flag.StringVar(&consoleLogLevel, "log-level", "", "Console log level: trace debug info warning error fatal panic")
}

func addPasswordFlag(cmd *Command) {
	cmd.Flag.StringVar(&password, "password", "", "Key record password, prompted for when empty")
}

func addTimeoutFlag(cmd *Command) {
	cmd.Flag.DurationVar(&timeout, "timeout", 0, "Give up after this duration, 0 waits forever")
}

// configInit loads the config file into conf.GConf, a missing file at the
// default location means the defaults.
func configInit() {
	if consoleLogLevel != "" {
		log.SetStringLevel(consoleLogLevel, log.InfoLevel)
		if lvl, err := logrus.ParseLevel(consoleLogLevel); err == nil {
			ConsoleLog.SetLevel(lvl)
		}
	}

	if !utils.Exist(utils.HomeDirExpand(configFile)) && configFile == conf.DefaultConfigFile {
		conf.GConf = conf.DefaultConfig()
		ConsoleLog.Debugf("no config at %s, using defaults", configFile)
		return
	}

	var err error
	if conf.GConf, err = conf.LoadConfig(configFile); err != nil {
		ConsoleLog.WithError(err).Error("load config file failed")
		SetExitStatus(1)
		return
	}
	if consoleLogLevel == "" {
		log.SetStringLevel(conf.GConf.LogLevel, log.InfoLevel)
	}
	ConsoleLog.Debugf("config:\n%s", spew.Sdump(conf.GConf))
}

// newClient starts the configured execution context.
func newClient() (client *worker.Client, closeFn func(), err error) {
	ec, err := worker.NewExecContext(conf.GConf)
	if err != nil {
		return
	}
	return worker.NewClient(ec), ec.Close, nil
}

func commandContext() (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}

// readSecret prompts for a value without echo on a terminal and reads one
// line otherwise.
func readSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	fd := int(syscall.Stdin)
	if terminal.IsTerminal(fd) {
		b, err := terminal.ReadPassword(fd)
		if err != nil {
			return "", errors.Wrap(err, "read from terminal failed")
		}
		return string(b), nil
	}

	line, err := input.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", errors.Wrap(err, "read from stdin failed")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readPassword returns the -password flag or prompts, confirm asks twice.
func readPassword(confirm bool) (string, error) {
	if password != "" {
		return password, nil
	}
	pass, err := readSecret("Enter key record password: ")
	if err != nil || !confirm {
		return pass, err
	}
	again, err := readSecret("Repeat password: ")
	if err != nil {
		return "", err
	}
	if pass != again {
		return "", errors.New("passwords do not match")
	}
	return pass, nil
}
