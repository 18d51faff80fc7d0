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
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

// ErrEmptySequence is returned when statistics or bins are requested for no values.
var ErrEmptySequence = errors.New("empty infidelity sequence")

// Summary holds aggregate statistics of infidelities.
// StdDev is the population standard deviation.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize computes Summary over all values. NaN values propagate.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrEmptySequence
	}
	data := stats.Float64Data(values)

	mean, err := stats.Mean(data)
	if err != nil {
		return Summary{}, errors.Wrap(err, "mean computation failed")
	}
	stdDev, err := stats.StandardDeviationPopulation(data)
	if err != nil {
		return Summary{}, errors.Wrap(err, "standard deviation computation failed")
	}
	min, err := stats.Min(data)
	if err != nil {
		return Summary{}, errors.Wrap(err, "minimum computation failed")
	}
	max, err := stats.Max(data)
	if err != nil {
		return Summary{}, errors.Wrap(err, "maximum computation failed")
	}

	return Summary{
		Count:  len(values),
		Mean:   mean,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
	}, nil
}

// Annotation formats mean with standard deviation as its uncertainty, e.g.
// "Avg. Infidelity = 36(27) pptt".
func (s Summary) Annotation() string {
	return fmt.Sprintf("Avg. Infidelity = %.0f(%.0f) pptt", s.Mean, s.StdDev)
}
