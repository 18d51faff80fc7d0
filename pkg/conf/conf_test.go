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

	. "github.com/smartystreets/goconvey/convey"
	"github.com/sirupsen/logrus"
)

const testAppName = "testAppName"

var customFlag = NewStringFlag("custom_arg", "help", "default")

func clearEnv() {
	// Clear all environment variables in context of that test.
	logLevelFlag.clear()
	customFlag.clear()
}

func TestConf(t *testing.T) {
	Convey("While using Conf pkg", t, func() {
		clearEnv()
		defer clearEnv()

		SetAppName(testAppName)
		SetHelp("some help")

		Convey("Name and help should match to specified one", func() {
			So(AppName(), ShouldEqual, testAppName)
			So(app.Help, ShouldEqual, "some help")
		})

		Convey("Log level can be fetched", func() {
			So(ParseEnv(), ShouldBeNil)
			So(LogLevel(), ShouldEqual, logrus.ErrorLevel)
		})

		Convey("Log level can be fetched from env", func() {
			os.Setenv(logLevelFlag.envName(), "debug")

			So(ParseEnv(), ShouldBeNil)
			So(LogLevel(), ShouldEqual, logrus.DebugLevel)
		})

		Convey("Unknown log level falls back to the default one", func() {
			os.Setenv(logLevelFlag.envName(), "chatty")

			So(ParseEnv(), ShouldBeNil)
			So(LogLevel(), ShouldEqual, logrus.ErrorLevel)
		})

		Convey("When some custom argument is defined", func() {
			Convey("When we do not define any environment variable we should have default value after parse", func() {
				So(ParseEnv(), ShouldBeNil)
				So(customFlag.Value(), ShouldEqual, customFlag.defaultValue)
			})

			Convey("When we define custom environment variable we should have custom value after parse", func() {
				os.Setenv(customFlag.envName(), "customContent")

				So(ParseEnv(), ShouldBeNil)
				So(customFlag.Value(), ShouldEqual, "customContent")
			})

			Convey("Command line takes precedence over environment", func() {
				os.Setenv(customFlag.envName(), "fromEnv")

				So(parse([]string{"--custom_arg=fromCLI"}), ShouldBeNil)
				So(customFlag.Value(), ShouldEqual, "fromCLI")
			})

			Convey("Unknown command line flag is an error", func() {
				So(parse([]string{"--not_registered=1"}), ShouldNotBeNil)
			})
		})

		Convey("Dumped configuration contains flags as environment variables", func() {
			os.Setenv(customFlag.envName(), "dumped")
			So(ParseEnv(), ShouldBeNil)

			dump := DumpConfig()
			So(dump, ShouldStartWith, "# Export are values.\nset -o allexport\n")
			So(dump, ShouldContainSubstring, "FORTE_LOG=error\n")
			So(dump, ShouldContainSubstring, "FORTE_CUSTOM_ARG=dumped\n")
			So(dump, ShouldEndWith, "set +o allexport")

			Convey("and values can be overridden by given map", func() {
				dump := DumpConfigMap(map[string]string{"custom_arg": "fromMap"})
				So(dump, ShouldContainSubstring, "FORTE_CUSTOM_ARG=fromMap\n")
			})
		})

		Convey("Current flag values are available as map", func() {
			So(ParseEnv(), ShouldBeNil)
			flags := GetFlags()
			So(flags["log"], ShouldEqual, "error")
			So(flags["custom_arg"], ShouldEqual, "default")
			So(flags, ShouldNotContainKey, "help")
		})
	})
}
