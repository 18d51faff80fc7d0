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

package visualization

// Table is a model for data.
type Table struct {
	headers []string
	data    [][]string
}

// NewTable creates new model of data representation.
func NewTable(headers []string, data [][]string) *Table {
	return &Table{
		headers,
		data,
	}
}

// List is a model for data.
type List struct {
	elements []string
	label    string
}

// NewList creates new model of data representation.
// Every element is printed prefixed with label.
func NewList(elements []string, label string) *List {
	return &List{
		elements,
		label,
	}
}

// RunMetadata identifies a run for the user.
type RunMetadata struct {
	runID  string
	runDir string
}

// NewRunMetadata creates new model of data representation.
func NewRunMetadata(runID, runDir string) *RunMetadata {
	return &RunMetadata{
		runID,
		runDir,
	}
}

// String returns a printable string with run metadata.
func (metadata *RunMetadata) String() string {
	return "Run id: " + metadata.runID + " (logs in " + metadata.runDir + ")"
}
