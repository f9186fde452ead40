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

package utils

import (
	"os"
	"runtime"
	"runtime/pprof"
	"sync"

	"github.com/pkg/errors"

	"github.com/CovenantSQL/ethkey/utils/log"
)

// heapSampleRate applies while a memory profile is requested.
const heapSampleRate = 4096

var prof struct {
	sync.Mutex
	cpu *os.File
	mem *os.File
}

func createProfile(path, kind string) (*os.File, error) {
	f, err := os.Create(HomeDirExpand(path))
	if err != nil {
		log.WithField("file", path).WithError(err).Errorf("failed to create %s profile file", kind)
		return nil, errors.Wrapf(err, "create %s profile failed", kind)
	}
	log.WithField("file", path).Infof("writing %s profile to file", kind)
	return f, nil
}

// StartProfile starts CPU and heap profiling into the given files, empty
// paths are skipped. Nothing is started when either file fails.
func StartProfile(cpuprofile, memprofile string) (err error) {
	prof.Lock()
	defer prof.Unlock()

	var cpu, mem *os.File
	if cpuprofile != "" {
		if cpu, err = createProfile(cpuprofile, "cpu"); err != nil {
			return
		}
	}
	if memprofile != "" {
		if mem, err = createProfile(memprofile, "memory"); err != nil {
			if cpu != nil {
				cpu.Close()
			}
			return
		}
	}

	if cpu != nil {
		if err = pprof.StartCPUProfile(cpu); err != nil {
			cpu.Close()
			if mem != nil {
				mem.Close()
			}
			return errors.Wrap(err, "start cpu profile failed")
		}
		prof.cpu = cpu
	}
	if mem != nil {
		runtime.MemProfileRate = heapSampleRate
		prof.mem = mem
	}
	return
}

// StopProfile stops CPU profiling and writes the heap profile.
func StopProfile() {
	prof.Lock()
	defer prof.Unlock()

	if prof.cpu != nil {
		pprof.StopCPUProfile()
		prof.cpu.Close()
		prof.cpu = nil
		log.Info("cpu profiling stopped")
	}
	if prof.mem != nil {
		if err := pprof.WriteHeapProfile(prof.mem); err != nil {
			log.WithError(err).Warning("write heap profile failed")
		}
		prof.mem.Close()
		prof.mem = nil
		log.Info("memory profiling stopped")
	}
}
