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

import "github.com/forte-bench/forte/pkg/conf"

var (
	// BinEdgesFlag is number of histogram bin edges.
	BinEdgesFlag = conf.NewIntFlag("survey_bin_edges", "Number of log-spaced histogram bin edges (bins + 1)", DefaultBinEdges)
	// FigureTitleFlag is title of survey figure.
	FigureTitleFlag = conf.NewStringFlag("survey_figure_title", "Title of the survey histogram", "XX gate survey, IonQ Forte, 31-qubit configuration")
	// FigureYMaxFlag is upper limit of the occurrence axis.
	FigureYMaxFlag = conf.NewFloatFlag("survey_figure_ymax", "Upper limit of the occurrence axis", 100)
)
