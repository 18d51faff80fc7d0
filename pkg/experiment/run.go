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
	"os"
	"path/filepath"
	"time"

	"github.com/forte-bench/forte/pkg/conf"
	"github.com/forte-bench/forte/pkg/metadata"
	"github.com/nu7hatch/gouuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// NewRunID returns random identifier of a run.
func NewRunID() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", errors.Wrap(err, "cannot generate run ID")
	}
	return id.String(), nil
}

// RunDir returns directory of run with given ID: <runs_dir>/<appName>_<runID>.
func RunDir(runID, appName string) string {
	return filepath.Join(conf.RunsDirectory.Value(), appName+"_"+runID)
}

// CreateRunDir creates run directory with the log file and makes it the working directory,
// so task outputs land next to the log.
func CreateRunDir(runID, appName string) (runDirectory string, logFile *os.File, err error) {
	runDirectory, err = filepath.Abs(RunDir(runID, appName))
	if err != nil {
		return "", nil, errors.Wrap(err, "cannot resolve run directory")
	}
	if err = os.MkdirAll(runDirectory, 0755); err != nil {
		return "", nil, errors.Wrapf(err, "cannot create run directory %q", runDirectory)
	}

	logFile, err = os.OpenFile(filepath.Join(runDirectory, appName+".log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", nil, errors.Wrapf(err, "cannot create log file in %q", runDirectory)
	}

	if err = os.Chdir(runDirectory); err != nil {
		logFile.Close()
		return "", nil, errors.Wrapf(err, "cannot enter run directory %q", runDirectory)
	}
	return runDirectory, logFile, nil
}

// AbsPaths replaces relative paths with absolute ones, so they survive entering run directory.
// Empty paths are left untouched.
func AbsPaths(paths ...*string) error {
	for _, path := range paths {
		if *path == "" {
			continue
		}
		absolute, err := filepath.Abs(*path)
		if err != nil {
			return errors.Wrapf(err, "cannot resolve %q", *path)
		}
		*path = absolute
	}
	return nil
}

// StartMetadata connects metadata storage for run and records runtime environment.
func StartMetadata(runID string, start time.Time) (metadata.Metadata, error) {
	storage, err := metadata.NewDefault(runID)
	if err != nil {
		return nil, err
	}
	if err := metadata.RecordRuntimeEnv(storage, start); err != nil {
		return nil, errors.Wrap(err, "cannot record runtime environment")
	}
	logrus.Debugf("Runtime environment of run %s recorded in %q metadata", runID, conf.DefaultMetadataDB.Value())
	return storage, nil
}
