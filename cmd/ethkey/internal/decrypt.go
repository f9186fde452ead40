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

	"github.com/CovenantSQL/ethkey/crypto/kms"
)

// CmdDecrypt is ethkey decrypt command entity.
var CmdDecrypt = &Command{
	UsageLine: "ethkey decrypt [common params] [-password pass] <record file>",
	Short:     "recover the secret key of a key record",
	Long: `
Decrypt opens a key record file and prints the hex secret key. A wrong password
and a corrupt record are reported the same way.
e.g.
    ethkey decrypt ~/.ethkey/key.json
`,
}

// msgNoSecret is printed when a record could not be opened.
const msgNoSecret = "wrong password or corrupt record"

func init() {
	CmdDecrypt.Run = runDecrypt

	addCommonFlags(CmdDecrypt)
	addPasswordFlag(CmdDecrypt)
}

func runDecrypt(cmd *Command, args []string) {
	if len(args) != 1 {
		ConsoleLog.Error("Decrypt command needs the key record file as param")
		SetExitStatus(1)
		return
	}
	configInit()
	ExitIfErrors()

	record, err := kms.LoadRecord(args[0])
	if err != nil {
		ConsoleLog.WithError(err).Error("load key record failed")
		SetExitStatus(1)
		return
	}
	pass, err := readPassword(false)
	if err != nil {
		ConsoleLog.WithError(err).Error("read password failed")
		SetExitStatus(1)
		return
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
	secret, err := client.DecryptKey(ctx, record, pass)
	if err != nil {
		ConsoleLog.WithError(err).Error("decrypt key failed")
		SetExitStatus(1)
		return
	}
	if secret == nil {
		ConsoleLog.Error(msgNoSecret)
		SetExitStatus(1)
		return
	}
	fmt.Fprintln(output, *secret)
}
