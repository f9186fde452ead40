/*
 * Copyright 2018 The CovenantSQL Authors.
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
	"io/ioutil"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrFileExists is returned by WriteSecretFile when dst is already present.
var ErrFileExists = errors.New("file already exists")

// WriteSecretFile writes data to dst with owner only permissions, creating
// parent directories as needed. An existing dst is never overwritten.
func WriteSecretFile(dst string, data []byte) (err error) {
	cleanDst := filepath.Clean(HomeDirExpand(dst))
	if Exist(cleanDst) {
		return errors.Wrap(ErrFileExists, cleanDst)
	}
	if err = os.MkdirAll(filepath.Dir(cleanDst), 0700); err != nil {
		return errors.Wrap(err, "create parent dir failed")
	}
	return errors.Wrap(ioutil.WriteFile(cleanDst, data, 0600), "write file failed")
}

// HomeDirExpand tries to expand the tilde (~) in the front of a path
// to a fullpath directory.
func HomeDirExpand(path string) string {
	usr, err := user.Current()
	if err != nil {
		return path
	}

	if path == "~" {
		return usr.HomeDir
	} else if strings.HasPrefix(path, "~/") {
		return filepath.Join(usr.HomeDir, strings.TrimPrefix(path, "~/"))
	}

	return path
}

// Exist return if file or path is exist.
func Exist(path string) bool {
	_, err := os.Stat(path)
	return err == nil || os.IsExist(err)
}
