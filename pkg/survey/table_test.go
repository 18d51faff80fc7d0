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
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTable(t *testing.T) {
	Convey("Given survey table", t, func() {
		table := &Table{
			Columns: []string{Q0Column, Q1Column, InfidelityColumn},
			Records: []Record{
				{Index: "0", Q0: 10, Q1: 21, Infidelity: 35},
				{Index: "1", Q0: 21, Q1: 10, Infidelity: 52},
				{Index: "2", Q0: 0, Q1: 10, Infidelity: 20},
			},
		}

		Convey("Pair lookup should be order sensitive", func() {
			matches := table.Pair(10, 21)
			So(matches, ShouldHaveLength, 1)
			So(matches[0].Index, ShouldEqual, "0")

			reversed := table.Pair(21, 10)
			So(reversed, ShouldHaveLength, 1)
			So(reversed[0].Index, ShouldEqual, "1")
		})

		Convey("Unknown pair should give no rows", func() {
			So(table.Pair(7, 29), ShouldBeEmpty)
		})

		Convey("Infidelities should follow row order", func() {
			So(table.Infidelities(), ShouldResemble, []float64{35, 52, 20})
		})

		Convey("Qubits should be sorted and unique", func() {
			So(table.Qubits(), ShouldResemble, []int{0, 10, 21})
		})

		Convey("Missing pairs should ignore order of qubits", func() {
			So(table.MissingPairs(), ShouldResemble, []QubitPair{{Q0: 0, Q1: 21}})
		})

		Convey("Both orders of one pair are a duplicate", func() {
			So(table.DuplicatePairs(), ShouldResemble, []QubitPair{{Q0: 10, Q1: 21}})
		})
	})

	Convey("Complete survey should have no missing pairs", t, func() {
		table := &Table{Records: []Record{{Q0: 1, Q1: 2}, {Q0: 1, Q1: 3}, {Q0: 3, Q1: 2}}}
		So(table.MissingPairs(), ShouldBeEmpty)
		So(table.DuplicatePairs(), ShouldBeEmpty)
	})
}
