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

// Package debug exposes a runtime log level switch on the default http mux,
// served by the metric web of the ethkey daemon.
package debug

import (
	"encoding/json"
	"net/http"

	"github.com/CovenantSQL/ethkey/utils/log"
)

// LogLevelPath is the path ServeLogLevel is registered at.
const LogLevelPath = "/debug/ethkey/loglevel"

func init() {
	http.HandleFunc(LogLevelPath, ServeLogLevel)
}

// ServeLogLevel reports the current level on GET and switches it on POST
// with form value "level".
func ServeLogLevel(w http.ResponseWriter, req *http.Request) {
	data := map[string]interface{}{}
	switch req.Method {
	case http.MethodPost:
		data["orig"] = log.GetLevel().String()
		if level := req.FormValue("level"); level != "" {
			data["want"] = level
			if lvl, err := log.ParseLevel(level); err != nil {
				data["err"] = err.Error()
			} else {
				log.SetLevel(lvl)
			}
		}
	case http.MethodGet:
	default:
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	data["level"] = log.GetLevel().String()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}
