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
	"encoding/json"
	"regexp"

	"github.com/pkg/errors"
)

// summaryTag prefixes the JSON line written by the driver.
const summaryTag = "GST_SUMMARY"

var summaryRegex = regexp.MustCompile(`(?m)^` + summaryTag + `\s+(\{.*\})\s*$`)

type runSummary struct {
	LibraryResultsDir string     `json:"library_results_dir"`
	Protocol          string     `json:"protocol"`
	NumParams         int        `json:"num_params"`
	Estimates         []Estimate `json:"estimates"`
}

type reportSummary struct {
	ReportDir string `json:"report_dir"`
}

func matchNotFound(match []string) bool {
	return match == nil || len(match) < 2 || len(match[1]) == 0
}

// findSummary returns JSON of the last summary line in output.
func findSummary(output string) ([]byte, error) {
	matches := summaryRegex.FindAllStringSubmatch(output, -1)
	if len(matches) == 0 || matchNotFound(matches[len(matches)-1]) {
		return nil, errors.Errorf("cannot find %s line in output", summaryTag)
	}
	return []byte(matches[len(matches)-1][1]), nil
}

func parseRunSummary(output string) (summary runSummary, err error) {
	data, err := findSummary(output)
	if err != nil {
		return summary, err
	}
	if err := json.Unmarshal(data, &summary); err != nil {
		return summary, errors.Wrapf(err, "cannot decode %s line", summaryTag)
	}
	if summary.LibraryResultsDir == "" {
		return summary, errors.Errorf("%s line does not name results directory", summaryTag)
	}
	if summary.Protocol == "" {
		summary.Protocol = Protocol
	}
	return summary, nil
}

func parseReportSummary(output string) (summary reportSummary, err error) {
	data, err := findSummary(output)
	if err != nil {
		return summary, err
	}
	if err := json.Unmarshal(data, &summary); err != nil {
		return summary, errors.Wrapf(err, "cannot decode %s line", summaryTag)
	}
	return summary, nil
}
