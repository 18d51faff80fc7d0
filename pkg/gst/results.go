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
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// ManifestFileName is the default name of saved Results.
const ManifestFileName = "gst_results.json"

// Estimate is a fitted figure of merit of a single gate.
type Estimate struct {
	// Operation is the gate label, e.g. "Gxpi2:0".
	Operation string `json:"operation"`
	// EntanglementInfidelity of the gauge optimized estimate with respect to the target gate.
	EntanglementInfidelity float64 `json:"entanglement_infidelity"`
}

// Results of a GST run. The fitted model itself stays in the library results
// object serialized under LibraryResultsDir.
type Results struct {
	RunID             string     `json:"run_id,omitempty"`
	Dataset           string     `json:"dataset"`
	Config            Config     `json:"config"`
	LibraryResultsDir string     `json:"library_results_dir"`
	Protocol          string     `json:"protocol"`
	NumParams         int        `json:"num_params"`
	Estimates         []Estimate `json:"estimates"`
	Started           time.Time  `json:"started"`
	Finished          time.Time  `json:"finished"`
}

// Duration of the fit.
func (r *Results) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// Estimate returns estimate of given operation.
func (r *Results) Estimate(operation string) (Estimate, bool) {
	for _, estimate := range r.Estimates {
		if estimate.Operation == operation {
			return estimate, true
		}
	}
	return Estimate{}, false
}

// Save writes results as JSON to path.
func (r *Results) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "cannot create directory for %q", path)
		}
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.Wrap(err, "cannot encode results")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.Wrapf(err, "cannot write results to %q", path)
	}
	return nil
}

// LoadResults reads results saved with Save.
func LoadResults(path string) (*Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read results from %q", path)
	}

	results := &Results{}
	if err := json.Unmarshal(data, results); err != nil {
		return nil, errors.Wrapf(err, "cannot decode results from %q", path)
	}
	if results.LibraryResultsDir == "" {
		return nil, errors.Errorf("results in %q do not point to library results", path)
	}
	return results, nil
}
