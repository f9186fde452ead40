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
	"encoding/json"
	"fmt"
)

// CmdDerive is ethkey derive command entity.
var CmdDerive = &Command{
	UsageLine: "ethkey derive [common params] [-timeout duration] [-phrase phrase]",
	Short:     "derive the wallet of a passphrase",
	Long: `
Derive turns a passphrase into a secret key, public key and address whose first
byte is zero. The phrase is prompted for when -phrase is omitted.
e.g.
    ethkey derive -phrase "correct horse battery staple"
`,
}

var phrase string

func init() {
	CmdDerive.Run = runDerive

	addCommonFlags(CmdDerive)
	addTimeoutFlag(CmdDerive)
	CmdDerive.Flag.StringVar(&phrase, "phrase", "", "Passphrase to derive from, prompted for when empty")
}

func runDerive(cmd *Command, args []string) {
	configInit()
	ExitIfErrors()

	p := phrase
	if p == "" {
		var err error
		if p, err = readSecret("Enter passphrase: "); err != nil {
			ConsoleLog.WithError(err).Error("read passphrase failed")
			SetExitStatus(1)
			return
		}
	}

	client, closeFn, err := newClient()
	if err != nil {
		ConsoleLog.WithError(err).Error("start execution context failed")
		SetExitStatus(1)
		return
	}
	defer closeFn()

	ctx, cancel := commandContext()
	defer cancel()
	w, err := client.DeriveWallet(ctx, p)
	if err != nil {
		ConsoleLog.WithError(err).Error("derive wallet failed")
		SetExitStatus(1)
		return
	}

	out, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		ConsoleLog.WithError(err).Error("marshal wallet failed")
		SetExitStatus(1)
		return
	}
	fmt.Fprintln(output, string(out))
}
