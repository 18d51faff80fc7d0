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
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const (
	// expectedFileMode is a string equivalent of 0644
	expectedFileMode = "-rw-r--r--"
	// expectedDirMode is a string equivalent of 0755
	expectedDirMode = "drwxr-xr-x"
)

func TestCreateExecutorOutputFiles(t *testing.T) {
	chdirToTemp(t)

	Convey("I should be able to create files and folders for task output", t, func() {
		stdout, stderr, err := createExecutorOutputFiles("/usr/bin/python3 -c 'pass'", "test")
		So(err, ShouldBeNil)
		So(stdout, ShouldNotBeNil)
		So(stderr, ShouldNotBeNil)
		defer stdout.Close()
		defer stderr.Close()

		Convey("Which should have got valid modes", func() {
			eStat, err := stderr.Stat()
			So(err, ShouldBeNil)
			So(eStat.Mode().String(), ShouldEqual, expectedFileMode)

			oStat, err := stdout.Stat()
			So(err, ShouldBeNil)
			So(oStat.Mode().String(), ShouldEqual, expectedFileMode)

			pDirStat, err := os.Stat(filepath.Dir(stdout.Name()))
			So(err, ShouldBeNil)
			So(pDirStat.Mode().String(), ShouldEqual, expectedDirMode)
		})

		Convey("Which should share a directory named after the binary", func() {
			So(filepath.Dir(stdout.Name()), ShouldEqual, filepath.Dir(stderr.Name()))
			So(strings.HasPrefix(filepath.Base(filepath.Dir(stdout.Name())), "test_python3_"), ShouldBeTrue)
		})

		Convey("Which should be removed together with the directory", func() {
			So(removeOutputDir(stdout.Name(), stderr.Name()), ShouldBeNil)
			_, err := os.Stat(filepath.Dir(stdout.Name()))
			So(os.IsNotExist(err), ShouldBeTrue)
		})
	})

	Convey("Empty command should not create output files", t, func() {
		_, _, err := createExecutorOutputFiles("", "test")
		So(err, ShouldNotBeNil)
		_, _, err = createExecutorOutputFiles("   ", "test")
		So(err, ShouldNotBeNil)
	})
}

func TestCloseOutputFiles(t *testing.T) {
	chdirToTemp(t)

	Convey("Closing output files should report every failure", t, func() {
		stdout, stderr, err := createExecutorOutputFiles("echo", "test")
		So(err, ShouldBeNil)

		So(closeOutputFiles(stdout, stderr), ShouldBeNil)

		err = closeOutputFiles(stdout, stderr)
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "cannot close stdout file")
		So(err.Error(), ShouldContainSubstring, "cannot close stderr file")
	})
}
