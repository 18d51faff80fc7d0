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

package metadata_test

import (
	"os"
	"testing"
	"time"

	"github.com/forte-bench/forte/pkg/metadata"
	"github.com/forte-bench/forte/pkg/metadata/mocks"
	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/mock"
)

func TestRecordRuntimeEnv(t *testing.T) {
	Convey("While recording runtime environment", t, func() {
		os.Setenv("FORTE_GST_MODE", "TP")
		defer os.Unsetenv("FORTE_GST_MODE")

		recorded := map[string]map[string]string{}
		storage := &mocks.Metadata{}
		storage.On("RecordMap", mock.AnythingOfType("map[string]string"), mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) {
				recorded[args.String(1)] = args.Get(0).(map[string]string)
			}).Return(nil)

		So(metadata.RecordRuntimeEnv(storage, time.Now()), ShouldBeNil)

		Convey("Every kind should be recorded once", func() {
			storage.AssertNumberOfCalls(t, "RecordMap", 4)
			So(recorded, ShouldContainKey, metadata.TypeFlags)
			So(recorded, ShouldContainKey, metadata.TypePlatform)
			So(recorded, ShouldContainKey, metadata.TypeEmpty)
		})

		Convey("Prefixed environment should be recorded", func() {
			So(recorded[metadata.TypeEnviron]["FORTE_GST_MODE"], ShouldEqual, "TP")
			for key := range recorded[metadata.TypeEnviron] {
				So(key, ShouldStartWith, "FORTE_")
			}
		})

		Convey("Host and platform should be recorded", func() {
			So(recorded[metadata.TypeEmpty], ShouldContainKey, "host")
			So(recorded[metadata.TypeEmpty], ShouldContainKey, "time")
			So(recorded[metadata.TypePlatform], ShouldContainKey, metadata.CPUCountKey)
			So(recorded[metadata.TypePlatform], ShouldContainKey, metadata.KernelVersionKey)
		})
	})

	Convey("Storage failure should stop recording", t, func() {
		storage := &mocks.Metadata{}
		storage.On("RecordMap", mock.Anything, metadata.TypeFlags).Return(errors.New("database is down"))

		So(metadata.RecordRuntimeEnv(storage, time.Now()), ShouldNotBeNil)
		storage.AssertNumberOfCalls(t, "RecordMap", 1)
	})
}

func TestNew(t *testing.T) {
	Convey("Default database should keep metadata in memory", t, func() {
		storage, err := metadata.NewDefault("run")
		So(err, ShouldBeNil)
		So(storage, ShouldHaveSameTypeAs, &metadata.None{})
	})

	Convey("Unknown database should be an error", t, func() {
		_, err := metadata.New("mysql", "run")
		So(err, ShouldNotBeNil)
	})
}
