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

package logger

import (
	"io"
	"os"

	"github.com/forte-bench/forte/pkg/experiment"
	"github.com/forte-bench/forte/pkg/utils/errutil"
	"github.com/sirupsen/logrus"
)

// Initialize creates run directory and configures logrus to write both to stderr and
// to the run log file. Returns the run directory.
func Initialize(appName, runID string) string {
	runDirectory, logFile, err := experiment.CreateRunDir(runID, appName)
	errutil.CheckWithContext(err, "Cannot create run logs directory")

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05.100"})
	logrus.SetOutput(io.MultiWriter(logFile, os.Stderr))
	logrus.Infof("Working directory %q", runDirectory)
	logrus.Info("Starting ", appName, " with run ID ", runID)

	return runDirectory
}
