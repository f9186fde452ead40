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
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/CovenantSQL/ethkey/crypto/kms"
)

// CmdEncrypt is ethkey encrypt command entity.
var CmdEncrypt = &Command{
	UsageLine: "ethkey encrypt [common params] [-password pass] [-secret hex] [-out file]",
	Short:     "wrap a secret key into a key record",
	Long: `
Encrypt seals a secret key into a version 3 key record. Without -out the record
is printed, otherwise it is written to a new file readable by the owner only.
e.g.
    ethkey encrypt -secret 0x4dfc...9cf0 -out ~/.ethkey/key.json
`,
}

var (
	secretHex  string
	outputFile string
)

func init() {
	CmdEncrypt.Run = runEncrypt

	addCommonFlags(CmdEncrypt)
	addPasswordFlag(CmdEncrypt)
	CmdEncrypt.Flag.StringVar(&secretHex, "secret", "", "Hex secret key, prompted for when empty")
	CmdEncrypt.Flag.StringVar(&outputFile, "out", "", "Write the record to this file instead of stdout")
}

func runEncrypt(cmd *Command, args []string) {
	configInit()
	ExitIfErrors()

	secret := secretHex
	if secret == "" {
		var err error
		if secret, err = readSecret("Enter hex secret key: "); err != nil {
			ConsoleLog.WithError(err).Error("read secret key failed")
			SetExitStatus(1)
			return
		}
	}
	pass, err := readPassword(true)
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
	record, err := client.EncryptKey(ctx, secret, pass)
	if err != nil {
		ConsoleLog.WithError(err).Error("encrypt key failed")
		SetExitStatus(1)
		return
	}

	if outputFile == "" {
		var buf bytes.Buffer
		if err = json.Indent(&buf, record, "", "  "); err != nil {
			ConsoleLog.WithError(err).Error("format key record failed")
			SetExitStatus(1)
			return
		}
		fmt.Fprintln(output, buf.String())
		return
	}
	if err = kms.SaveRecord(outputFile, record); err != nil {
		ConsoleLog.WithError(err).Error("save key record failed")
		SetExitStatus(1)
		return
	}
	ConsoleLog.Infof("key record saved to %s", outputFile)
}
