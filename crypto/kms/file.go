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

package kms

import (
	"io/ioutil"

	"github.com/pkg/errors"

	"github.com/CovenantSQL/ethkey/utils"
)

// ErrNotKeyFile indicates specified key record file is empty.
var ErrNotKeyFile = errors.New("key record file empty")

// LoadRecord reads a record file for DecryptKey.
func LoadRecord(path string) (data []byte, err error) {
	if data, err = ioutil.ReadFile(utils.HomeDirExpand(path)); err != nil {
		return nil, errors.Wrap(err, "read key record failed")
	}
	if len(data) == 0 {
		return nil, ErrNotKeyFile
	}
	return
}

// SaveRecord writes record JSON to path with 0600 permissions, refusing to
// overwrite an existing file.
func SaveRecord(path string, data []byte) error {
	return utils.WriteSecretFile(path, data)
}
