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
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
)

// CmdHelp is ethkey help command entity.
var CmdHelp = &Command{
	UsageLine: "ethkey help [command]",
	Short:     "show help of a command",
}

func init() {
	CmdHelp.Run = runHelp
}

var usageTemplate = `ethkey derives Ethereum style wallets from passphrases and seals secret keys
into version 3 key records.

Usage:

	ethkey <command> [params] [arguments]

The commands are:
{{range .}}{{if .Runnable}}
	{{.Name | printf "%-11s"}} {{.Short}}{{end}}{{end}}

Use "ethkey help <command>" for more information about a command.
`

func printUsage(w io.Writer) {
	t := template.Must(template.New("usage").Parse(usageTemplate))
	if err := t.Execute(w, EthkeyCommands); err != nil {
		ConsoleLog.WithError(err).Error("render usage failed")
	}
}

// MainUsage prints the command list and exits with status 2.
func MainUsage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func runHelp(cmd *Command, args []string) {
	if len(args) == 0 {
		printUsage(output)
		return
	}
	if len(args) != 1 {
		ConsoleLog.Error("usage: ethkey help command")
		SetExitStatus(2)
		return
	}

	arg := strings.TrimSpace(args[0])
	for _, c := range EthkeyCommands {
		if c.Name() == arg {
			fmt.Fprintf(output, "usage: %s\n", c.UsageLine)
			if c.Long != "" {
				fmt.Fprintln(output, strings.TrimSpace(c.Long))
			}
			return
		}
	}
	ConsoleLog.Errorf("unknown help topic %#q, run 'ethkey help'", arg)
	SetExitStatus(2)
}
