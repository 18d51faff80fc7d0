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

package executor

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	errcollection "github.com/forte-bench/forte/pkg/utils/err_collection"
	"github.com/pkg/errors"
)

const (
	stdoutFileName = "stdout"
	stderrFileName = "stderr"
)

// getBinaryNameFromCommand returns base name of the first word of the command.
func getBinaryNameFromCommand(command string) (string, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", errors.Errorf("failed to extract command name from %q", command)
	}
	_, name := path.Split(fields[0])
	if name == "" {
		return "", errors.Errorf("failed to extract command name from %q", command)
	}
	return name, nil
}

// createExecutorOutputFiles creates <cwd>/<prefix>_<binary>_XXXX/{stdout,stderr}.
func createExecutorOutputFiles(command, prefix string) (stdout, stderr *os.File, err error) {
	if len(command) == 0 {
		return nil, nil, errors.New("empty command string")
	}

	commandName, err := getBinaryNameFromCommand(command)
	if err != nil {
		return nil, nil, err
	}

	pwd, err := os.Getwd()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get working directory")
	}
	outputDir, err := os.MkdirTemp(pwd, prefix+"_"+commandName+"_")
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to create output directory for %q", commandName)
	}
	if err = os.Chmod(outputDir, 0755); err != nil {
		return nil, nil, errors.Wrapf(err, "failed to set privileges for dir %q", outputDir)
	}

	stdout, err = os.Create(filepath.Join(outputDir, stdoutFileName))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to create stdout file in %q", outputDir)
	}

	stderr, err = os.Create(filepath.Join(outputDir, stderrFileName))
	if err != nil {
		stdout.Close()
		os.Remove(stdout.Name())
		return nil, nil, errors.Wrapf(err, "failed to create stderr file in %q", outputDir)
	}

	return stdout, stderr, nil
}

// openFile opens a fresh read handle for the output file.
func openFile(filePath string) (*os.File, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open %q", filePath)
	}
	return file, nil
}

// removeOutputDir removes both output files and the directory holding them.
func removeOutputDir(stdoutPath, stderrPath string) error {
	if err := os.Remove(stdoutPath); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "cannot remove %q", stdoutPath)
	}
	if err := os.Remove(stderrPath); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "cannot remove %q", stderrPath)
	}
	outputDir := filepath.Dir(stdoutPath)
	if err := os.Remove(outputDir); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "cannot remove %q", outputDir)
	}
	return nil
}

// closeOutputFiles closes both output files and reports every failure.
func closeOutputFiles(stdoutFile, stderrFile *os.File) error {
	var errCollection errcollection.ErrorCollection
	if err := stdoutFile.Close(); err != nil {
		errCollection.Add(errors.Wrap(err, "cannot close stdout file"))
	}
	if err := stderrFile.Close(); err != nil {
		errCollection.Add(errors.Wrap(err, "cannot close stderr file"))
	}
	return errCollection.GetErrIfAny()
}
