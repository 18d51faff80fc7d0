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

package survey

import (
	"sort"
)

const (
	// Q0Column holds index of the first qubit of the pair.
	Q0Column = "q0"
	// Q1Column holds index of the second qubit of the pair.
	Q1Column = "q1"
	// InfidelityColumn holds gate infidelity in parts per ten thousand (pptt).
	InfidelityColumn = "infidelity"
)

// Record is a single survey row: one two-qubit gate measurement.
type Record struct {
	// Index is the value of the first (index) column.
	Index      string
	Q0         int
	Q1         int
	Infidelity float64
	// Extra keeps remaining columns by name, unparsed.
	Extra map[string]string
}

// QubitPair identifies a gate by its qubits.
type QubitPair struct {
	Q0 int
	Q1 int
}

func (p QubitPair) unordered() QubitPair {
	if p.Q0 > p.Q1 {
		return QubitPair{Q0: p.Q1, Q1: p.Q0}
	}
	return p
}

// Table is the loaded survey. It is read-only after loading.
type Table struct {
	// IndexName is the header of the index column (empty for unnamed index).
	IndexName string
	// Columns are the remaining header names in file order.
	Columns []string
	// Records are rows in file order.
	Records []Record
}

// Len returns number of rows.
func (t *Table) Len() int {
	return len(t.Records)
}

// Infidelities returns the infidelity column in row order.
func (t *Table) Infidelities() []float64 {
	values := make([]float64, 0, len(t.Records))
	for _, record := range t.Records {
		values = append(values, record.Infidelity)
	}
	return values
}

// Pair returns rows measured for exactly q0 as first and q1 as second qubit.
// Lookup is order sensitive: Pair(10, 21) does not match a (21, 10) row.
func (t *Table) Pair(q0, q1 int) []Record {
	var matches []Record
	for _, record := range t.Records {
		if record.Q0 == q0 && record.Q1 == q1 {
			matches = append(matches, record)
		}
	}
	return matches
}

// Qubits returns sorted indexes of all qubits present in the survey.
func (t *Table) Qubits() []int {
	seen := map[int]struct{}{}
	for _, record := range t.Records {
		seen[record.Q0] = struct{}{}
		seen[record.Q1] = struct{}{}
	}
	qubits := make([]int, 0, len(seen))
	for qubit := range seen {
		qubits = append(qubits, qubit)
	}
	sort.Ints(qubits)
	return qubits
}

// MissingPairs returns unordered pairs of surveyed qubits without any row, with Q0 < Q1.
// Sparse coverage is legal: a survey may skip pairs on purpose.
func (t *Table) MissingPairs() []QubitPair {
	present := map[QubitPair]struct{}{}
	for _, record := range t.Records {
		present[QubitPair{Q0: record.Q0, Q1: record.Q1}.unordered()] = struct{}{}
	}

	var missing []QubitPair
	qubits := t.Qubits()
	for i, q0 := range qubits {
		for _, q1 := range qubits[i+1:] {
			if _, ok := present[QubitPair{Q0: q0, Q1: q1}]; !ok {
				missing = append(missing, QubitPair{Q0: q0, Q1: q1})
			}
		}
	}
	return missing
}

// DuplicatePairs returns unordered pairs, with Q0 <= Q1, measured in more than one row.
func (t *Table) DuplicatePairs() []QubitPair {
	counts := map[QubitPair]int{}
	var order []QubitPair
	for _, record := range t.Records {
		pair := QubitPair{Q0: record.Q0, Q1: record.Q1}.unordered()
		if counts[pair] == 1 {
			order = append(order, pair)
		}
		counts[pair]++
	}
	return order
}
