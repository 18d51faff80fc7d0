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
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultBinEdges is number of histogram edges (one more than number of bins).
const DefaultBinEdges = 30

var (
	// ErrBinCount is returned when fewer than two edges are requested.
	ErrBinCount = errors.New("at least two bin edges are required")
	// ErrNonPositiveValue is returned when log-spaced edges are requested for zero or negative values.
	ErrNonPositiveValue = errors.New("log-spaced bins require positive values")
	// ErrNonFiniteValue is returned when values contain NaN or infinity.
	ErrNonFiniteValue = errors.New("log-spaced bins require finite values")
)

// LogEdges returns count edges spaced logarithmically from half of the minimum
// to twice the maximum of values. Outer edges are exactly min/2 and 2*max.
func LogEdges(values []float64, count int) ([]float64, error) {
	if len(values) == 0 {
		return nil, ErrEmptySequence
	}
	if count < 2 {
		return nil, errors.Wrapf(ErrBinCount, "got %d", count)
	}

	min, max := math.Inf(1), math.Inf(-1)
	for _, value := range values {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, errors.Wrapf(ErrNonFiniteValue, "got %v", value)
		}
		if value <= 0 {
			return nil, errors.Wrapf(ErrNonPositiveValue, "got %v", value)
		}
		min = math.Min(min, value)
		max = math.Max(max, value)
	}

	lower, upper := min/2, max*2
	edges := floats.LogSpan(make([]float64, count), lower, upper)
	// exp(log(x)) may drift by an ulp.
	edges[0], edges[count-1] = lower, upper
	return edges, nil
}

// Histogram is the result of binning values: len(Counts) == len(Edges)-1.
// Bin i covers [Edges[i], Edges[i+1]).
type Histogram struct {
	Edges  []float64
	Counts []int
}

// NewHistogram bins values into log-spaced bins described by edgeCount edges.
func NewHistogram(values []float64, edgeCount int) (Histogram, error) {
	edges, err := LogEdges(values, edgeCount)
	if err != nil {
		return Histogram{}, err
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	weights := stat.Histogram(nil, edges, sorted, nil)
	counts := make([]int, len(weights))
	for i, weight := range weights {
		counts[i] = int(weight)
	}
	return Histogram{Edges: edges, Counts: counts}, nil
}

// Total returns number of binned values.
func (h Histogram) Total() int {
	total := 0
	for _, count := range h.Counts {
		total += count
	}
	return total
}
