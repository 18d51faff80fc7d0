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

// Runner fits a gate set model to the dataset stored in a directory.
// Fitting is delegated to an external library; Run blocks until it completes.
type Runner interface {
	Run(dataset string, config Config) (*Results, error)
}

// Reporter writes the library HTML report for results produced by a Runner.
type Reporter interface {
	WriteReport(results *Results, config ReportConfig) error
}
