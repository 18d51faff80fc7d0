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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/units"
	"github.com/forte-bench/forte/pkg/executor"
	"github.com/forte-bench/forte/pkg/executor/mocks"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/mock"
)

const runOutput = `Loading dataset
--- Iterative GST: Iter 1 of 6 ---
GST_SUMMARY {"library_results_dir": "data/smq2Q_XYXX", "protocol": "StandardGST", "num_params": 1632, "estimates": [{"operation": "Gxpi2:0", "entanglement_infidelity": 0.0012}, {"operation": "Gxx:0:1", "entanglement_infidelity": 0.0041}]}
`

func testConfig() Config {
	return Config{
		ModelPack: "smq2Q_XYXX",
		Mode:      "CPTP",
		Tolerance: 1e-3,
		Verbosity: 4,
		MemLimit:  12 * units.GiB,
	}
}

// outputFile returns function opening a new handle to file with content on every call.
func outputFile(t *testing.T, name, content string) func() *os.File {
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return func() *os.File {
		file, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		return file
	}
}

func newMockedHandle(t *testing.T, stdout string, exitCode int) *mocks.TaskHandle {
	handle := &mocks.TaskHandle{}
	handle.On("StdoutFile").Return(outputFile(t, "stdout", stdout), nil)
	handle.On("StderrFile").Return(outputFile(t, "stderr", "warning: slow\n"), nil)
	handle.On("ExitCode").Return(exitCode, nil)
	handle.On("Address").Return("127.0.0.1")
	handle.On("Clean").Return(nil)
	return handle
}

func TestBackendRun(t *testing.T) {
	log.SetLevel(log.PanicLevel)

	Convey("While running GST through mocked executor", t, func() {
		shell := &mocks.Executor{}
		shell.On("Name").Return("Local")
		backend := NewBackend(shell, "python3")

		var command string
		captureCommand := func(args mock.Arguments) { command = args.String(0) }

		Convey("Successful fit should give results parsed from output", func() {
			handle := newMockedHandle(t, runOutput, 0)
			handle.On("Wait", time.Duration(0)).Return(true)
			shell.On("Execute", mock.AnythingOfType("string")).Run(captureCommand).Return(handle, nil)

			results, err := backend.Run("data/smq2Q_XYXX", testConfig())
			So(err, ShouldBeNil)
			So(results.Dataset, ShouldEqual, "data/smq2Q_XYXX")
			So(results.LibraryResultsDir, ShouldEqual, "data/smq2Q_XYXX")
			So(results.Protocol, ShouldEqual, "StandardGST")
			So(results.NumParams, ShouldEqual, 1632)
			So(results.Estimates, ShouldHaveLength, 2)
			So(results.Config, ShouldResemble, testConfig())
			So(results.Finished.Before(results.Started), ShouldBeFalse)

			estimate, ok := results.Estimate("Gxx:0:1")
			So(ok, ShouldBeTrue)
			So(estimate.EntanglementInfidelity, ShouldEqual, 0.0041)

			Convey("Command should pass protocol configuration to the driver", func() {
				So(strings.HasPrefix(command, "python3 -c '"), ShouldBeTrue)
				So(command, ShouldContainSubstring, " run --dataset data/smq2Q_XYXX")
				So(command, ShouldContainSubstring, "--model-pack smq2Q_XYXX")
				So(command, ShouldContainSubstring, "--mode CPTP")
				So(command, ShouldContainSubstring, "--tol 0.001")
				So(command, ShouldContainSubstring, "--verbosity 4")
				So(command, ShouldContainSubstring, "--memlimit 12884901888")
				So(command, ShouldNotContainSubstring, "--results-dir")
			})

			Convey("Task should be cleaned", func() {
				handle.AssertCalled(t, "Clean")
			})
		})

		Convey("Results directory should be passed when configured", func() {
			handle := newMockedHandle(t, runOutput, 0)
			handle.On("Wait", time.Duration(0)).Return(true)
			shell.On("Execute", mock.AnythingOfType("string")).Run(captureCommand).Return(handle, nil)

			config := testConfig()
			config.ResultsDir = "results dir"
			_, err := backend.Run("data/smq2Q_XYXX", config)
			So(err, ShouldBeNil)
			So(command, ShouldContainSubstring, "--results-dir 'results dir'")
		})

		Convey("Failing fit should be an error with exit code", func() {
			handle := newMockedHandle(t, "Traceback (most recent call last):\n", 1)
			handle.On("Wait", time.Duration(0)).Return(true)
			shell.On("Execute", mock.AnythingOfType("string")).Return(handle, nil)

			_, err := backend.Run("data/smq2Q_XYXX", testConfig())
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "exited with code 1")
		})

		Convey("Fit exceeding timeout should be stopped", func() {
			handle := newMockedHandle(t, "", 143)
			handle.On("Wait", time.Minute).Return(false)
			handle.On("Stop").Return(nil)
			shell.On("Execute", mock.AnythingOfType("string")).Return(handle, nil)

			config := testConfig()
			config.Timeout = time.Minute
			_, err := backend.Run("data/smq2Q_XYXX", config)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "timed out")
			handle.AssertCalled(t, "Stop")
		})

		Convey("Output without summary should be an error", func() {
			handle := newMockedHandle(t, "done\n", 0)
			handle.On("Wait", time.Duration(0)).Return(true)
			shell.On("Execute", mock.AnythingOfType("string")).Return(handle, nil)

			_, err := backend.Run("data/smq2Q_XYXX", testConfig())
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "GST_SUMMARY")
		})

		Convey("Executor failure should be returned", func() {
			shell.On("Execute", mock.AnythingOfType("string")).Return(nil, errors.New("python3: not found"))

			_, err := backend.Run("data/smq2Q_XYXX", testConfig())
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "not found")
		})

		Convey("Invalid configuration should not launch anything", func() {
			config := testConfig()
			config.Tolerance = 0
			_, err := backend.Run("data/smq2Q_XYXX", config)
			So(err, ShouldNotBeNil)

			_, err = backend.Run("", testConfig())
			So(err, ShouldNotBeNil)
			shell.AssertNotCalled(t, "Execute", mock.Anything)
		})
	})
}

func TestBackendWriteReport(t *testing.T) {
	log.SetLevel(log.PanicLevel)

	Convey("While writing report through mocked executor", t, func() {
		shell := &mocks.Executor{}
		shell.On("Name").Return("Local")
		backend := NewBackend(shell, "/opt/conda/bin/python")
		results := &Results{LibraryResultsDir: "data/smq2Q_XYXX"}

		Convey("Report command should name results, title and directory", func() {
			var command string
			handle := newMockedHandle(t, "GST_SUMMARY {\"report_dir\": \"gst_report\"}\n", 0)
			handle.On("Wait", time.Duration(0)).Return(true)
			shell.On("Execute", mock.AnythingOfType("string")).Run(func(args mock.Arguments) {
				command = args.String(0)
			}).Return(handle, nil)

			err := backend.WriteReport(results, ReportConfig{Title: "XX GST IonQ Forte", Dir: "gst_report", Verbosity: 2})
			So(err, ShouldBeNil)
			So(strings.HasPrefix(command, "/opt/conda/bin/python -c '"), ShouldBeTrue)
			So(command, ShouldContainSubstring, " report --results-dir data/smq2Q_XYXX")
			So(command, ShouldContainSubstring, "--title 'XX GST IonQ Forte'")
			So(command, ShouldContainSubstring, "--report-dir gst_report")
			So(command, ShouldContainSubstring, "--verbosity 2")
		})

		Convey("Results without library directory should be an error", func() {
			So(backend.WriteReport(&Results{}, DefaultReportConfig()), ShouldNotBeNil)
			So(backend.WriteReport(nil, DefaultReportConfig()), ShouldNotBeNil)
		})

		Convey("Empty report directory should be an error", func() {
			So(backend.WriteReport(results, ReportConfig{Title: "t"}), ShouldNotBeNil)
		})
	})
}

// TestBackendWithLocalExecutor runs the whole path through a real process, with a fake
// interpreter printing the summary line.
func TestBackendWithLocalExecutor(t *testing.T) {
	log.SetLevel(log.PanicLevel)
	dir := t.TempDir()
	pwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(pwd)

	fakePython := filepath.Join(dir, "python")
	script := "#!/bin/sh\ncat <<'END'\n" + runOutput + "END\n"
	if err := os.WriteFile(fakePython, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}

	Convey("Backend should run interpreter with local executor", t, func() {
		backend := NewBackend(executor.NewLocal(), fakePython)
		results, err := backend.Run("data/smq2Q_XYXX", testConfig())
		So(err, ShouldBeNil)
		So(results.NumParams, ShouldEqual, 1632)
	})
}
