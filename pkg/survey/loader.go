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
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrMissingColumn is returned when the header lacks one of q0, q1 or infidelity.
var ErrMissingColumn = errors.New("required column is missing")

// Load reads survey CSV file from path.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open survey %q", path)
	}
	defer file.Close()

	table, err := Read(file)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot load survey %q", path)
	}
	log.Debugf("Loaded %d survey rows from %q", table.Len(), path)
	return table, nil
}

// Read parses survey CSV: header row first, first column being the row index.
// Empty infidelity cell is read as NaN.
func Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	// Every row must have as many fields as the header.
	reader.FieldsPerRecord = 0

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("missing header row")
	}
	if err != nil {
		return nil, errors.Wrap(err, "malformed header")
	}

	table, positions, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "malformed row")
		}
		line, _ := reader.FieldPos(0)

		record, err := parseRow(row, table, positions)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		table.Records = append(table.Records, record)
	}

	for _, pair := range table.DuplicatePairs() {
		log.Warnf("Qubit pair (%d, %d) is measured more than once", pair.Q0, pair.Q1)
	}
	return table, nil
}

type columnPositions struct {
	q0, q1, infidelity int
}

func parseHeader(header []string) (*Table, columnPositions, error) {
	positions := columnPositions{q0: -1, q1: -1, infidelity: -1}
	if len(header) < 2 {
		return nil, positions, errors.Errorf("header %q must have index column and data columns", header)
	}

	table := &Table{IndexName: strings.TrimSpace(header[0])}
	seen := map[string]bool{}
	for i, name := range header[1:] {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, positions, errors.Errorf("header column %d is empty", i+2)
		}
		if seen[name] {
			return nil, positions, errors.Errorf("header column %q is duplicated", name)
		}
		seen[name] = true
		table.Columns = append(table.Columns, name)

		switch name {
		case Q0Column:
			positions.q0 = i + 1
		case Q1Column:
			positions.q1 = i + 1
		case InfidelityColumn:
			positions.infidelity = i + 1
		}
	}

	for name, position := range map[string]int{Q0Column: positions.q0, Q1Column: positions.q1, InfidelityColumn: positions.infidelity} {
		if position < 0 {
			return nil, positions, errors.Wrapf(ErrMissingColumn, "column %q", name)
		}
	}
	return table, positions, nil
}

func parseRow(row []string, table *Table, positions columnPositions) (Record, error) {
	record := Record{Index: row[0]}

	var err error
	if record.Q0, err = strconv.Atoi(strings.TrimSpace(row[positions.q0])); err != nil {
		return record, errors.Wrapf(err, "column %q", Q0Column)
	}
	if record.Q1, err = strconv.Atoi(strings.TrimSpace(row[positions.q1])); err != nil {
		return record, errors.Wrapf(err, "column %q", Q1Column)
	}
	if record.Infidelity, err = parseFloat(row[positions.infidelity]); err != nil {
		return record, errors.Wrapf(err, "column %q", InfidelityColumn)
	}

	for i, name := range table.Columns {
		position := i + 1
		if position == positions.q0 || position == positions.q1 || position == positions.infidelity {
			continue
		}
		if record.Extra == nil {
			record.Extra = map[string]string{}
		}
		record.Extra[name] = row[position]
	}
	return record, nil
}

func parseFloat(field string) (float64, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(field, 64)
}
