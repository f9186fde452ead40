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
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
)

// A Command is an implementation of an ethkey command like ethkey derive.
type Command struct {
	// Run runs the command.
	// The args are the arguments after the command name.
	Run func(cmd *Command, args []string)

	// UsageLine is the one-line usage message.
	// The words between "ethkey" and the first flag or argument in the line
	// are taken to be the command name.
	UsageLine string

	// Short is the short description shown in the 'ethkey help' output.
	Short string

	// Long is the long message shown in the 'ethkey help <this-command>' output.
	Long string

	// Flag is a set of flags specific to this command.
	Flag flag.FlagSet
}

// EthkeyCommands lists the available commands and help topics.
// The order here is the order in which they are printed by 'ethkey help'.
var EthkeyCommands []*Command

// LongName returns the command's long name: all the words in the usage line
// between "ethkey" and a flag or argument.
func (c *Command) LongName() string {
	name := c.UsageLine
	if i := strings.Index(name, " ["); i >= 0 {
		name = name[:i]
	}
	if i := strings.Index(name, " <"); i >= 0 {
		name = name[:i]
	}
	return strings.TrimPrefix(name, "ethkey ")
}

// Name returns the command's short name: the last word in the usage line
// before a flag or argument.
func (c *Command) Name() string {
	name := c.LongName()
	if i := strings.LastIndex(name, " "); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// Usage prints the command usage and exits with status 2.
func (c *Command) Usage() {
	printCommandUsage(os.Stderr, c)
	os.Exit(2)
}

// Runnable reports whether the command can be run.
func (c *Command) Runnable() bool {
	return c.Run != nil
}

var atExitFuncs []func()

// AtExit registers f to run before Exit.
func AtExit(f func()) {
	atExitFuncs = append(atExitFuncs, f)
}

// Exit runs the registered exit hooks and exits with the current status.
func Exit() {
	for _, f := range atExitFuncs {
		f()
	}
	os.Exit(GetExitStatus())
}

// ExitIfErrors exits when a previous step set a non zero status.
func ExitIfErrors() {
	if GetExitStatus() != 0 {
		Exit()
	}
}

var (
	exitStatus = 0
	exitMu     sync.Mutex
)

// SetExitStatus raises the exit status to n, it never lowers a failure back
// to success except when n is 0.
func SetExitStatus(n int) {
	exitMu.Lock()
	if exitStatus < n || n == 0 {
		exitStatus = n
	}
	exitMu.Unlock()
}

// GetExitStatus returns the current exit status.
func GetExitStatus() int {
	exitMu.Lock()
	defer exitMu.Unlock()
	return exitStatus
}

func printCommandUsage(w *os.File, c *Command) {
	fmt.Fprintf(w, "usage: %s\n", c.UsageLine)
	if c.Long != "" {
		fmt.Fprintf(w, "%s\n", strings.TrimSpace(c.Long))
	}
	fmt.Fprintf(w, "\nParams:\n")
	c.Flag.SetOutput(w)
	c.Flag.PrintDefaults()
}
