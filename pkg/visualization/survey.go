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

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/forte-bench/forte/pkg/survey"
)

// NewSummaryTable shows survey statistics in a single row.
func NewSummaryTable(summary survey.Summary) *Table {
	return NewTable(
		[]string{"count", "mean [pptt]", "std [pptt]", "min [pptt]", "max [pptt]"},
		[][]string{{
			strconv.Itoa(summary.Count),
			formatFloat(summary.Mean),
			formatFloat(summary.StdDev),
			formatFloat(summary.Min),
			formatFloat(summary.Max),
		}},
	)
}

// NewRecordsTable shows survey rows with every column of the survey.
func NewRecordsTable(table *survey.Table, records []survey.Record) *Table {
	headers := append([]string{table.IndexName}, table.Columns...)
	data := make([][]string, 0, len(records))
	for _, record := range records {
		row := []string{record.Index}
		for _, column := range table.Columns {
			switch column {
			case survey.Q0Column:
				row = append(row, strconv.Itoa(record.Q0))
			case survey.Q1Column:
				row = append(row, strconv.Itoa(record.Q1))
			case survey.InfidelityColumn:
				row = append(row, strconv.FormatFloat(record.Infidelity, 'g', -1, 64))
			default:
				row = append(row, record.Extra[column])
			}
		}
		data = append(data, row)
	}
	return NewTable(headers, data)
}

// NewPairsList lists qubit pairs as "(q0, q1)".
func NewPairsList(pairs []survey.QubitPair, label string) *List {
	elements := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		elements = append(elements, fmt.Sprintf("(%d, %d)", pair.Q0, pair.Q1))
	}
	return NewList(elements, label)
}

// NewMapTable shows key value pairs sorted by key.
func NewMapTable(headers []string, values map[string]string) *Table {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	data := make([][]string, 0, len(keys))
	for _, key := range keys {
		data = append(data, []string{key, values[key]})
	}
	return NewTable(headers, data)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
