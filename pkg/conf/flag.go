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
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/units"
	"gopkg.in/alecthomas/kingpin.v2"
)

// flagType is an internal interface for all flags.
// Every flag should have method for creating `envName` from its name and `clear` method
// for clearing corresponding environment variable from env.
type flagType interface {
	envName() string
	clear()
}

// definedFlags stores all the defined flags. It helps to find
// duplicates when defining flag with the same name.
var definedFlags = map[string]flagType{}

// cliAndEnvFlag represents option's definition from CLI and Environment variable.
type cliAndEnvFlag struct {
	*kingpin.FlagClause
}

func newCliAndEnvFlag(flagName string, description string, defaultValue string) *cliAndEnvFlag {
	c := &cliAndEnvFlag{FlagClause: app.Flag(flagName, description)}
	c.Envar(c.envName())
	if defaultValue != "" {
		c.Default(defaultValue)
	}
	return c
}

// envName returns name converted to environment variable name.
// For instance: "cassandra_address" will be "FORTE_CASSANDRA_ADDRESS".
func (f *cliAndEnvFlag) envName() string {
	return fmt.Sprintf("%s_%s", EnvironmentPrefix, strings.ToUpper(f.Model().Name))
}

// clear unsets the corresponding environment variable.
func (f *cliAndEnvFlag) clear() {
	os.Unsetenv(f.envName())
}

// register stores the flag and invalidates previous parse, so Value() returns defaults
// until flags are parsed again.
func register(flagName string, flag flagType) {
	definedFlags[flagName] = flag
	isEnvParsed = false
}

// redefined returns already registered flag with the same name or nil.
// It panics when the flag was registered with a different type or default.
func redefined(flagName string, sameDefinition func(flagType) bool) flagType {
	duplicatedFlag, ok := definedFlags[flagName]
	if !ok {
		return nil
	}
	if !sameDefinition(duplicatedFlag) {
		panic(fmt.Sprintf("flag %q was redefined with different type or default value", flagName))
	}
	return duplicatedFlag
}

// StringFlag represents flag with string value.
type StringFlag struct {
	*cliAndEnvFlag
	defaultValue string
	value        *string
}

// NewStringFlag is a constructor of StringFlag struct.
func NewStringFlag(flagName string, description string, defaultValue string) *StringFlag {
	if flagDef := redefined(flagName, func(f flagType) bool {
		s, ok := f.(*StringFlag)
		return ok && s.defaultValue == defaultValue
	}); flagDef != nil {
		return flagDef.(*StringFlag)
	}

	flagDef := &StringFlag{
		cliAndEnvFlag: newCliAndEnvFlag(flagName, description, defaultValue),
		defaultValue:  defaultValue,
	}
	flagDef.value = flagDef.String()
	register(flagName, flagDef)
	return flagDef
}

// Value returns value of defined flag after parse.
// NOTE: If conf is not parsed it returns default value (!)
func (s StringFlag) Value() string {
	if !isEnvParsed {
		return s.defaultValue
	}
	return *s.value
}

// IntFlag represents flag with int value.
type IntFlag struct {
	*cliAndEnvFlag
	defaultValue int
	value        *int
}

// NewIntFlag is a constructor of IntFlag struct.
func NewIntFlag(flagName string, description string, defaultValue int) *IntFlag {
	if flagDef := redefined(flagName, func(f flagType) bool {
		i, ok := f.(*IntFlag)
		return ok && i.defaultValue == defaultValue
	}); flagDef != nil {
		return flagDef.(*IntFlag)
	}

	flagDef := &IntFlag{
		cliAndEnvFlag: newCliAndEnvFlag(flagName, description, strconv.Itoa(defaultValue)),
		defaultValue:  defaultValue,
	}
	flagDef.value = flagDef.Int()
	register(flagName, flagDef)
	return flagDef
}

// Value returns value of defined flag after parse.
// NOTE: If conf is not parsed it returns default value (!)
func (i IntFlag) Value() int {
	if !isEnvParsed {
		return i.defaultValue
	}
	return *i.value
}

// FloatFlag represents flag with float64 value.
type FloatFlag struct {
	*cliAndEnvFlag
	defaultValue float64
	value        *float64
}

// NewFloatFlag is a constructor of FloatFlag struct.
func NewFloatFlag(flagName string, description string, defaultValue float64) *FloatFlag {
	if flagDef := redefined(flagName, func(f flagType) bool {
		fl, ok := f.(*FloatFlag)
		return ok && fl.defaultValue == defaultValue
	}); flagDef != nil {
		return flagDef.(*FloatFlag)
	}

	flagDef := &FloatFlag{
		cliAndEnvFlag: newCliAndEnvFlag(flagName, description, strconv.FormatFloat(defaultValue, 'g', -1, 64)),
		defaultValue:  defaultValue,
	}
	flagDef.value = flagDef.Float64()
	register(flagName, flagDef)
	return flagDef
}

// Value returns value of defined flag after parse.
// NOTE: If conf is not parsed it returns default value (!)
func (f FloatFlag) Value() float64 {
	if !isEnvParsed {
		return f.defaultValue
	}
	return *f.value
}

// BoolFlag represents flag with bool value.
type BoolFlag struct {
	*cliAndEnvFlag
	defaultValue bool
	value        *bool
}

// NewBoolFlag is a constructor of BoolFlag struct.
func NewBoolFlag(flagName string, description string, defaultValue bool) *BoolFlag {
	if flagDef := redefined(flagName, func(f flagType) bool {
		b, ok := f.(*BoolFlag)
		return ok && b.defaultValue == defaultValue
	}); flagDef != nil {
		return flagDef.(*BoolFlag)
	}

	flagDef := &BoolFlag{
		cliAndEnvFlag: newCliAndEnvFlag(flagName, description, strconv.FormatBool(defaultValue)),
		defaultValue:  defaultValue,
	}
	flagDef.value = flagDef.Bool()
	register(flagName, flagDef)
	return flagDef
}

// Value returns value of defined flag after parse.
// NOTE: If conf is not parsed it returns default value (!)
func (b BoolFlag) Value() bool {
	if !isEnvParsed {
		return b.defaultValue
	}
	return *b.value
}

// DurationFlag represents flag with duration value.
type DurationFlag struct {
	*cliAndEnvFlag
	defaultValue time.Duration
	value        *time.Duration
}

// NewDurationFlag is a constructor of DurationFlag struct.
func NewDurationFlag(flagName string, description string, defaultValue time.Duration) *DurationFlag {
	if flagDef := redefined(flagName, func(f flagType) bool {
		d, ok := f.(*DurationFlag)
		return ok && d.defaultValue == defaultValue
	}); flagDef != nil {
		return flagDef.(*DurationFlag)
	}

	flagDef := &DurationFlag{
		cliAndEnvFlag: newCliAndEnvFlag(flagName, description, defaultValue.String()),
		defaultValue:  defaultValue,
	}
	flagDef.value = flagDef.Duration()
	register(flagName, flagDef)
	return flagDef
}

// Value returns value of defined flag after parse.
// NOTE: If conf is not parsed it returns default value (!)
func (d DurationFlag) Value() time.Duration {
	if !isEnvParsed {
		return d.defaultValue
	}
	return *d.value
}

// BytesFlag represents flag with a byte size value written with base 2 units, e.g. "12GiB".
type BytesFlag struct {
	*cliAndEnvFlag
	defaultValue units.Base2Bytes
	value        *units.Base2Bytes
}

// NewBytesFlag is a constructor of BytesFlag struct.
func NewBytesFlag(flagName string, description string, defaultValue units.Base2Bytes) *BytesFlag {
	if flagDef := redefined(flagName, func(f flagType) bool {
		b, ok := f.(*BytesFlag)
		return ok && b.defaultValue == defaultValue
	}); flagDef != nil {
		return flagDef.(*BytesFlag)
	}

	flagDef := &BytesFlag{
		cliAndEnvFlag: newCliAndEnvFlag(flagName, description, defaultValue.String()),
		defaultValue:  defaultValue,
	}
	flagDef.value = flagDef.Bytes()
	register(flagName, flagDef)
	return flagDef
}

// Value returns value of defined flag after parse.
// NOTE: If conf is not parsed it returns default value (!)
func (b BytesFlag) Value() units.Base2Bytes {
	if !isEnvParsed {
		return b.defaultValue
	}
	return *b.value
}
