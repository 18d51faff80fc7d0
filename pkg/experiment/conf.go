// Copyright (c) 2017 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package experiment

import (
	"fmt"
	"os"

	"github.com/forte-bench/forte/pkg/conf"
	"github.com/forte-bench/forte/pkg/metadata"
	"github.com/forte-bench/forte/pkg/utils/errutil"
	"github.com/sirupsen/logrus"
)

// Exit codes follow sysexits.h.
const (
	// ExUsage means the command was used incorrectly.
	ExUsage = 64
	// ExSoftware means an internal error was detected.
	ExSoftware = 70
)

var (
	// dumpConfigFlag name includes dash to exclude it from dumping.
	dumpConfigFlag = conf.NewBoolFlag("config-dump", "Dump configuration as environment script.", false)
	// dumpConfigRunIDFlag name includes dash to exclude it from dumping.
	dumpConfigRunIDFlag = conf.NewStringFlag("config-dump-run-id", "Dump configuration recorded in metadata of given run ID.", "")
)

// Configure handles configuration parsing and dumping based on config-* flags.
// Note: exits if configuration dump was requested.
func Configure() {
	err := conf.ParseFlags()
	if err != nil {
		logrus.Errorf("Cannot parse flags: %q", err.Error())
		os.Exit(ExUsage)
	}
	logrus.SetLevel(conf.LogLevel())

	if dumpConfigFlag.Value() {
		previousRunID := dumpConfigRunIDFlag.Value()
		if previousRunID != "" {
			storage, err := metadata.NewDefault(previousRunID)
			errutil.CheckWithContext(err, "Cannot connect to metadata database")
			flags, err := storage.GetByKind(metadata.TypeFlags)
			errutil.CheckWithContext(err, "Cannot retrieve configuration of run "+previousRunID)
			fmt.Println(conf.DumpConfigMap(flags))
		} else {
			fmt.Println(conf.DumpConfig())
		}
		os.Exit(0)
	}
}
