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

package gst

import (
	_ "embed" // driver.py
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/alessio/shellescape"
	"github.com/forte-bench/forte/pkg/conf"
	"github.com/forte-bench/forte/pkg/executor"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Protocol is the library protocol run by Backend.
const Protocol = "StandardGST"

// PythonFlag is the interpreter with pyGSTi installed.
var PythonFlag = conf.NewStringFlag("gst_python", "Python interpreter with pyGSTi installed", "python3")

//go:embed driver.py
var driverScript string

// Backend runs pyGSTi through the embedded driver program.
// The program is executed by the executor, so the fit may run on a remote host;
// dataset, results and report paths are then paths on that host.
type Backend struct {
	executor executor.Executor
	python   string
	now      func() time.Time
}

// NewBackend returns Backend launching python on given executor.
func NewBackend(shell executor.Executor, python string) *Backend {
	return &Backend{
		executor: shell,
		python:   python,
		now:      time.Now,
	}
}

// command builds shell command running driver subcommand with args.
func (b *Backend) command(subcommand string, args ...string) string {
	words := append([]string{b.python, "-c", driverScript, subcommand}, args...)
	return shellescape.QuoteCommand(words)
}

func runArgs(dataset string, config Config) []string {
	args := []string{
		"--dataset", dataset,
		"--model-pack", config.ModelPack,
		"--mode", config.Mode,
		"--tol", strconv.FormatFloat(config.Tolerance, 'g', -1, 64),
		"--verbosity", strconv.Itoa(config.Verbosity),
		"--memlimit", strconv.FormatInt(int64(config.MemLimit), 10),
	}
	if config.ResultsDir != "" {
		args = append(args, "--results-dir", config.ResultsDir)
	}
	return args
}

// Run fits the model to dataset and blocks until the fit ends.
// No retries: a failed fit is returned as error.
func (b *Backend) Run(dataset string, config Config) (*Results, error) {
	if dataset == "" {
		return nil, errors.New("dataset directory is empty")
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid GST configuration")
	}

	log.Infof("Running %s %s fit of %q (model pack %s, tolerance %g, memory limit %s) on %s",
		Protocol, config.Mode, dataset, config.ModelPack, config.Tolerance, config.MemLimit, b.executor.Name())
	started := b.now()

	stdout, err := b.execute("run", config.Timeout, runArgs(dataset, config)...)
	if err != nil {
		return nil, errors.Wrapf(err, "GST fit of %q failed", dataset)
	}
	summary, err := parseRunSummary(stdout)
	if err != nil {
		return nil, errors.Wrapf(err, "GST fit of %q", dataset)
	}

	results := &Results{
		Dataset:           dataset,
		Config:            config,
		LibraryResultsDir: summary.LibraryResultsDir,
		Protocol:          summary.Protocol,
		NumParams:         summary.NumParams,
		Estimates:         summary.Estimates,
		Started:           started,
		Finished:          b.now(),
	}
	log.Infof("GST fit of %q finished in %s with %d estimates", dataset, results.Duration(), len(results.Estimates))
	return results, nil
}

// WriteReport makes the library reload results and write its HTML report into config.Dir.
func (b *Backend) WriteReport(results *Results, config ReportConfig) error {
	if results == nil || results.LibraryResultsDir == "" {
		return errors.New("results do not point to library results")
	}
	if err := config.Validate(); err != nil {
		return errors.Wrap(err, "invalid report configuration")
	}

	log.Infof("Writing report %q of %q to %q", config.Title, results.LibraryResultsDir, config.Dir)
	stdout, err := b.execute("report", 0,
		"--results-dir", results.LibraryResultsDir,
		"--title", config.Title,
		"--report-dir", config.Dir,
		"--verbosity", strconv.Itoa(config.Verbosity),
	)
	if err != nil {
		return errors.Wrapf(err, "cannot write report to %q", config.Dir)
	}
	if _, err := parseReportSummary(stdout); err != nil {
		return errors.Wrapf(err, "report %q", config.Dir)
	}
	return nil
}

// execute runs driver subcommand and returns its stdout. Zero timeout waits forever.
func (b *Backend) execute(subcommand string, timeout time.Duration, args ...string) (string, error) {
	command := b.command(subcommand, args...)
	description := fmt.Sprintf("%s %s", b.python, subcommand)

	handle, err := b.executor.Execute(command)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := handle.Clean(); err != nil {
			log.Warnf("Cannot clean %q task: %v", description, err)
		}
	}()

	if !handle.Wait(timeout) {
		log.Errorf("%q did not finish within %s, stopping", description, timeout)
		if err := handle.Stop(); err != nil {
			log.Errorf("Cannot stop %q: %v", description, err)
		}
		executor.LogUnsucessfulExecution(description, b.executor.Name(), handle)
		return "", errors.Errorf("%q timed out after %s", description, timeout)
	}

	exitCode, err := handle.ExitCode()
	if err != nil {
		return "", errors.Wrapf(err, "cannot get exit code of %q", description)
	}
	if exitCode != 0 {
		executor.LogUnsucessfulExecution(description, b.executor.Name(), handle)
		return "", errors.Errorf("%q exited with code %d", description, exitCode)
	}
	executor.LogSuccessfulExecution(description, b.executor.Name(), handle)

	stdoutFile, err := handle.StdoutFile()
	if err != nil {
		return "", errors.Wrapf(err, "cannot open stdout of %q", description)
	}
	defer stdoutFile.Close()

	output, err := io.ReadAll(stdoutFile)
	if err != nil {
		return "", errors.Wrapf(err, "cannot read stdout of %q", description)
	}
	return string(output), nil
}
