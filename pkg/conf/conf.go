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
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

// EnvironmentPrefix is prepended to every flag name to get the environment variable
// which overrides it, e.g. "survey_csv" is read from "FORTE_SURVEY_CSV".
const EnvironmentPrefix = "FORTE"

var (
	app = kingpin.New("forte", "No help available")

	logLevelFlag = NewStringFlag(
		"log",
		"Log level: debug, info, warn, error, fatal, panic",
		"error",
	)
	isEnvParsed = false
)

// SetHelp sets the help message for the CLI.
func SetHelp(help string) {
	app.Help = help
}

// SetAppName sets application name for CLI output.
func SetAppName(name string) {
	app.Name = name
}

// AppName returns specified app name.
func AppName() string {
	return app.Name
}

// LogLevel returns configured logLevel from input option or env variable.
// If it cannot parse the log level, it returns default value.
func LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(logLevelFlag.Value())
	if err == nil {
		return level
	}

	level, err = logrus.ParseLevel(logLevelFlag.defaultValue)
	if err == nil {
		return level
	}

	// Programmer error.
	panic(errors.Wrap(err, "parsing log level failed"))
}

// ParseFlags parses both the command line flags of the process and
// environment variables.
func ParseFlags() error {
	return parse(os.Args[1:])
}

// ParseEnv parses the environment only.
func ParseEnv() error {
	return parse([]string{})
}

func parse(args []string) error {
	if _, err := app.Parse(args); err != nil {
		return errors.Wrapf(err, "could not parse flags %v", args)
	}
	isEnvParsed = true
	return nil
}

type flagDefinition struct {
	Name, Value, Default, Help string
}

// flagsDefinition returns current value, default and help of every registered flag
// in registration order, which groups flags by the package defining them.
func flagsDefinition() (flags []flagDefinition) {
	for _, flag := range app.Model().Flags {
		// Skip kingpin builtins and dashed flags which cannot be expressed as environment variables.
		if flag.Name == "help" || strings.Contains(flag.Name, "-") {
			continue
		}

		value := strings.Join(flag.Default, ",")
		if isEnvParsed {
			value = flag.Value.String()
		}

		flags = append(flags, flagDefinition{
			Name:    flag.Name,
			Help:    flag.Help,
			Default: strings.Join(flag.Default, ","),
			Value:   value,
		})
	}
	return flags
}

// DumpConfig dumps environment based configuration with current values of flags.
func DumpConfig() string {
	return DumpConfigMap(nil)
}

// DumpConfigMap dumps environment based configuration with current values overwritten by given flagMap.
// Includes "allexport" directives for bash.
func DumpConfigMap(flagMap map[string]string) string {
	buffer := &bytes.Buffer{}

	buffer.WriteString("# Export are values.\n")
	buffer.WriteString("set -o allexport\n")

	for _, fd := range flagsDefinition() {
		fmt.Fprintf(buffer, "\n# %s\n", fd.Help)
		if fd.Default != "" {
			fmt.Fprintf(buffer, "# Default: %s\n", fd.Default)
		}

		value := fd.Value
		if mapValue, ok := flagMap[fd.Name]; ok {
			value = mapValue
		}

		fmt.Fprintf(buffer, "%s_%s=%v\n", EnvironmentPrefix, strings.ToUpper(fd.Name), value)
	}

	buffer.WriteString("set +o allexport")
	return buffer.String()
}

// GetFlags returns flags as map with current values.
func GetFlags() map[string]string {
	flagsMap := map[string]string{}
	for _, flag := range flagsDefinition() {
		flagsMap[flag.Name] = flag.Value
	}
	return flagsMap
}
