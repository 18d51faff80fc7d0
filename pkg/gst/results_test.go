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
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func testResults() *Results {
	started := time.Date(2022, 5, 17, 10, 0, 0, 0, time.UTC)
	return &Results{
		RunID:             "7f3c",
		Dataset:           "data/smq2Q_XYXX",
		Config:            testConfig(),
		LibraryResultsDir: "data/smq2Q_XYXX",
		Protocol:          Protocol,
		NumParams:         1632,
		Estimates: []Estimate{
			{Operation: "Gxpi2:0", EntanglementInfidelity: 0.0012},
			{Operation: "Gxx:0:1", EntanglementInfidelity: 0.0041},
		},
		Started:  started,
		Finished: started.Add(42 * time.Minute),
	}
}

func TestResultsRoundTrip(t *testing.T) {
	Convey("When results are saved", t, func() {
		results := testResults()
		path := filepath.Join(t.TempDir(), "nested", ManifestFileName)
		So(results.Save(path), ShouldBeNil)

		Convey("Loading them should reproduce fitted estimates and configuration", func() {
			loaded, err := LoadResults(path)
			So(err, ShouldBeNil)
			So(loaded.Estimates, ShouldResemble, results.Estimates)
			So(loaded.NumParams, ShouldEqual, results.NumParams)
			So(loaded.Config, ShouldResemble, results.Config)
			So(loaded.LibraryResultsDir, ShouldEqual, results.LibraryResultsDir)
			So(loaded.Started.Equal(results.Started), ShouldBeTrue)
			So(loaded.Duration(), ShouldEqual, 42*time.Minute)
		})
	})

	Convey("Loading missing file should be an error", t, func() {
		_, err := LoadResults(filepath.Join(t.TempDir(), ManifestFileName))
		So(err, ShouldNotBeNil)
	})

	Convey("Loading file without library results should be an error", t, func() {
		path := filepath.Join(t.TempDir(), ManifestFileName)
		So(os.WriteFile(path, []byte("{\"num_params\": 3}"), 0644), ShouldBeNil)
		_, err := LoadResults(path)
		So(err, ShouldNotBeNil)
	})

	Convey("Unknown operation should not have estimate", t, func() {
		_, ok := testResults().Estimate("Gypi2:1")
		So(ok, ShouldBeFalse)
	})
}

func TestWriteSummary(t *testing.T) {
	Convey("When writing summary page", t, func() {
		buffer := &bytes.Buffer{}
		So(WriteSummary(buffer, testResults(), "XX GST IonQ Forte"), ShouldBeNil)

		Convey("It should contain title, configuration and estimates", func() {
			page := buffer.String()
			So(page, ShouldContainSubstring, "<title>XX GST IonQ Forte</title>")
			So(page, ShouldContainSubstring, "CPTP")
			So(page, ShouldContainSubstring, "12GiB")
			So(page, ShouldContainSubstring, "Gxx:0:1")
			So(page, ShouldContainSubstring, "41.0")
			So(page, ShouldContainSubstring, "42m0s")
		})

		Convey("Summary file should be written into report directory", func() {
			dir := filepath.Join(t.TempDir(), "gst_report")
			path, err := WriteSummaryFile(dir, testResults(), "XX GST IonQ Forte")
			So(err, ShouldBeNil)
			So(path, ShouldEqual, filepath.Join(dir, SummaryFileName))
			_, err = os.Stat(path)
			So(err, ShouldBeNil)
		})
	})

	Convey("Nil results should be an error", t, func() {
		So(WriteSummary(&bytes.Buffer{}, nil, "title"), ShouldNotBeNil)
	})
}
