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
	"time"

	"github.com/alecthomas/units"
	"github.com/forte-bench/forte/pkg/conf"
	"github.com/pkg/errors"
)

var (
	// ModelPackFlag names pyGSTi model pack describing the gate set.
	ModelPackFlag = conf.NewStringFlag("gst_model_pack", "pyGSTi model pack of the dataset", "smq2Q_XYXX")
	// ModeFlag is the StandardGST model parameterization.
	ModeFlag = conf.NewStringFlag("gst_mode", "StandardGST model parameterization (e.g. CPTP, TP, full)", "CPTP")
	// ToleranceFlag is the optimizer tolerance.
	ToleranceFlag = conf.NewFloatFlag("gst_tolerance", "Optimizer tolerance of the GST fit", 1e-3)
	// VerbosityFlag is verbosity of the fit.
	VerbosityFlag = conf.NewIntFlag("gst_verbosity", "Verbosity of the GST fit", 4)
	// MemLimitFlag is memory budget of the fit.
	MemLimitFlag = conf.NewBytesFlag("gst_memlimit", "Memory limit of the GST fit", 12*units.GiB)
	// ResultsDirFlag is where the library serializes its results object.
	ResultsDirFlag = conf.NewStringFlag("gst_results_dir", "Directory for the serialized library results (dataset directory when empty)", "")
	// TimeoutFlag bounds the fit duration.
	TimeoutFlag = conf.NewDurationFlag("gst_timeout", "Maximum duration of the GST fit (0 means unbounded)", 0)

	// ReportTitleFlag is title of HTML report.
	ReportTitleFlag = conf.NewStringFlag("gst_report_title", "Title of the GST report", "XX GST IonQ Forte")
	// ReportDirFlag is output directory of HTML report. Use gst_resport for the legacy artifact name.
	ReportDirFlag = conf.NewStringFlag("gst_report_dir", "Output directory of the GST report", "gst_report")
	// ReportVerbosityFlag is verbosity of report generation.
	ReportVerbosityFlag = conf.NewIntFlag("gst_report_verbosity", "Verbosity of the GST report generation", 2)
)

// Config is the GST protocol configuration.
type Config struct {
	ModelPack string  `json:"model_pack"`
	Mode      string  `json:"mode"`
	Tolerance float64 `json:"tolerance"`
	Verbosity int     `json:"verbosity"`
	// MemLimit is passed to the fit in bytes.
	MemLimit units.Base2Bytes `json:"memlimit"`
	// ResultsDir is where library results object is written; empty means the dataset directory.
	ResultsDir string `json:"results_dir,omitempty"`
	// Timeout of the fit; zero means unbounded.
	Timeout time.Duration `json:"timeout,omitempty"`
}

// DefaultConfig returns Config populated from flags.
func DefaultConfig() Config {
	return Config{
		ModelPack:  ModelPackFlag.Value(),
		Mode:       ModeFlag.Value(),
		Tolerance:  ToleranceFlag.Value(),
		Verbosity:  VerbosityFlag.Value(),
		MemLimit:   MemLimitFlag.Value(),
		ResultsDir: ResultsDirFlag.Value(),
		Timeout:    TimeoutFlag.Value(),
	}
}

// Validate checks that the configuration can be passed to the fit.
func (c Config) Validate() error {
	if c.ModelPack == "" {
		return errors.New("model pack is empty")
	}
	if c.Mode == "" {
		return errors.New("mode is empty")
	}
	if c.Tolerance <= 0 {
		return errors.Errorf("tolerance must be positive, got %v", c.Tolerance)
	}
	if c.MemLimit <= 0 {
		return errors.Errorf("memory limit must be positive, got %v", c.MemLimit)
	}
	if c.Timeout < 0 {
		return errors.Errorf("timeout must not be negative, got %v", c.Timeout)
	}
	return nil
}

// ReportConfig describes the HTML report.
type ReportConfig struct {
	Title     string
	Dir       string
	Verbosity int
}

// DefaultReportConfig returns ReportConfig populated from flags.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		Title:     ReportTitleFlag.Value(),
		Dir:       ReportDirFlag.Value(),
		Verbosity: ReportVerbosityFlag.Value(),
	}
}

// Validate checks that the report can be written.
func (c ReportConfig) Validate() error {
	if c.Dir == "" {
		return errors.New("report directory is empty")
	}
	return nil
}
