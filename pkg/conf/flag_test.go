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

package conf

import (
	"os"
	"testing"
	"time"

	"github.com/alecthomas/units"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEnvFlag(t *testing.T) {
	Convey("While using Flag struct, it should construct proper environment var name", t, func() {
		So(NewStringFlag("test_name", "", "").envName(), ShouldEqual, "FORTE_TEST_NAME")
	})
}

func TestFlags(t *testing.T) {
	Convey("While using Conf flags", t, func() {
		Convey("When some custom Int Flag is defined", func() {
			customFlag := NewIntFlag("custom_int_arg", "help", 23424)
			customFlag.clear()
			defer customFlag.clear()

			Convey("We should have default value after parse", func() {
				So(ParseEnv(), ShouldBeNil)
				So(customFlag.Value(), ShouldEqual, 23424)
			})

			Convey("We should have custom value after parse", func() {
				os.Setenv(customFlag.envName(), "11")
				So(ParseEnv(), ShouldBeNil)
				So(customFlag.Value(), ShouldEqual, 11)
			})

			Convey("Malformed value should fail the parse", func() {
				os.Setenv(customFlag.envName(), "eleven")
				So(ParseEnv(), ShouldNotBeNil)
			})
		})

		Convey("When some custom Float Flag is defined", func() {
			customFlag := NewFloatFlag("custom_float_arg", "help", 1e-3)
			customFlag.clear()
			defer customFlag.clear()

			Convey("We should have default value after parse", func() {
				So(ParseEnv(), ShouldBeNil)
				So(customFlag.Value(), ShouldEqual, 1e-3)
			})

			Convey("We should have custom value after parse", func() {
				os.Setenv(customFlag.envName(), "1e-4")
				So(ParseEnv(), ShouldBeNil)
				So(customFlag.Value(), ShouldEqual, 1e-4)
			})
		})

		Convey("When some custom Bool Flag is defined", func() {
			customFlag := NewBoolFlag("custom_bool_arg", "help", false)
			customFlag.clear()
			defer customFlag.clear()

			Convey("We should have default value after parse", func() {
				So(ParseEnv(), ShouldBeNil)
				So(customFlag.Value(), ShouldBeFalse)
			})

			Convey("We should have custom value after parse", func() {
				os.Setenv(customFlag.envName(), "true")
				So(ParseEnv(), ShouldBeNil)
				So(customFlag.Value(), ShouldBeTrue)
			})
		})

		Convey("When some custom Duration Flag is defined", func() {
			customFlag := NewDurationFlag("custom_duration_arg", "help", 5*time.Second)
			customFlag.clear()
			defer customFlag.clear()

			Convey("We should have default value after parse", func() {
				So(ParseEnv(), ShouldBeNil)
				So(customFlag.Value(), ShouldEqual, 5*time.Second)
			})

			Convey("We should have custom value after parse", func() {
				os.Setenv(customFlag.envName(), "2h")
				So(ParseEnv(), ShouldBeNil)
				So(customFlag.Value(), ShouldEqual, 2*time.Hour)
			})
		})

		Convey("When some custom Bytes Flag is defined", func() {
			customFlag := NewBytesFlag("custom_bytes_arg", "help", 12*units.GiB)
			customFlag.clear()
			defer customFlag.clear()

			Convey("We should have default value after parse", func() {
				So(ParseEnv(), ShouldBeNil)
				So(customFlag.Value(), ShouldEqual, 12*units.GiB)
				So(int64(customFlag.Value()), ShouldEqual, int64(12)*1024*1024*1024)
			})

			Convey("We should have custom value after parse", func() {
				os.Setenv(customFlag.envName(), "512MiB")
				So(ParseEnv(), ShouldBeNil)
				So(customFlag.Value(), ShouldEqual, 512*units.MiB)
			})
		})

		Convey("When flag is defined twice with the same definition, the first one is returned", func() {
			first := NewStringFlag("custom_twice_arg", "help", "x")
			second := NewStringFlag("custom_twice_arg", "help", "x")
			So(second, ShouldPointTo, first)
		})

		Convey("When flag is redefined with different default it should panic", func() {
			NewIntFlag("custom_redefined_arg", "help", 1)
			So(func() { NewIntFlag("custom_redefined_arg", "help", 2) }, ShouldPanic)
		})

		Convey("When flag is redefined with different type it should panic", func() {
			NewIntFlag("custom_retyped_arg", "help", 1)
			So(func() { NewStringFlag("custom_retyped_arg", "help", "1") }, ShouldPanic)
		})
	})
}
