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
)

// CmdVerify is ethkey verify command entity.
var CmdVerify = &Command{
	UsageLine: "ethkey verify [common params] <secret>",
	Short:     "check a hex secret key against the curve",
	Long: `
Verify prints true when the 32 byte hex secret lies in (0, N) of secp256k1 and
false otherwise. Malformed hex is an error.
e.g.
    ethkey verify 0x4dfc66dd28c95990ce6bc53fcc01b039d7a3db48fb5ecb59fb0e3fe3feec9cf0
`,
}

func init() {
	CmdVerify.Run = runVerify

	addCommonFlags(CmdVerify)
}

func runVerify(cmd *Command, args []string) {
	if len(args) != 1 {
		ConsoleLog.Error("Verify command needs the secret key as param")
		SetExitStatus(1)
		return
	}
	configInit()
	ExitIfErrors()

	client, closeFn, err := newClient()
	if err != nil {
		ConsoleLog.WithError(err).Error("start execution context failed")
		SetExitStatus(1)
		return
	}
	defer closeFn()

	ctx, cancel := commandContext()
	defer cancel()
	ok, err := client.VerifySecretKey(ctx, args[0])
	if err != nil {
		ConsoleLog.WithError(err).Error("verify secret key failed")
		SetExitStatus(1)
		return
	}
	fmt.Fprintln(output, ok)
}
