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

package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/forte-bench/forte/pkg/conf"
	"github.com/forte-bench/forte/pkg/experiment"
	"github.com/forte-bench/forte/pkg/experiment/logger"
	"github.com/forte-bench/forte/pkg/metadata"
	"github.com/forte-bench/forte/pkg/survey"
	"github.com/forte-bench/forte/pkg/utils/errutil"
	"github.com/forte-bench/forte/pkg/visualization"
	"github.com/sirupsen/logrus"
)

const appName = "survey"

var (
	csvFlag    = conf.NewStringFlag("survey_csv", "Path of the gate survey CSV file", "data/survey_data.csv")
	figureFlag = conf.NewStringFlag("survey_figure", "Output path of the infidelity histogram (format from extension)", "survey_histogram.png")
	q0Flag     = conf.NewIntFlag("survey_q0", "First qubit of the looked up pair", 10)
	q1Flag     = conf.NewIntFlag("survey_q1", "Second qubit of the looked up pair", 21)
)

func main() {
	start := time.Now()
	conf.SetAppName(appName)
	conf.SetHelp(`Survey loads two-qubit gate infidelities measured on every qubit pair, prints their statistics,
plots the log-binned histogram and looks up a single pair.`)
	experiment.Configure()

	csvPath, figurePath := csvFlag.Value(), figureFlag.Value()
	errutil.CheckWithContext(experiment.AbsPaths(&csvPath, &figurePath), "Cannot resolve input and output paths")

	runID, err := experiment.NewRunID()
	errutil.Check(err)
	runDirectory := logger.Initialize(appName, runID)
	defer func() {
		visualization.PrintRunMetadata(os.Stdout, visualization.NewRunMetadata(runID, runDirectory))
	}()

	storage, err := experiment.StartMetadata(runID, start)
	errutil.CheckWithContext(err, "Cannot record run metadata")

	table, err := survey.Load(csvPath)
	errutil.CheckWithContext(err, "Cannot load survey")
	logrus.Infof("Loaded %d records of %d qubits from %q", table.Len(), len(table.Qubits()), csvPath)

	summary, err := survey.Summarize(table.Infidelities())
	errutil.CheckWithContext(err, "Cannot summarize survey")
	visualization.DrawTable(os.Stdout, visualization.NewSummaryTable(summary))
	fmt.Println(summary.Annotation())

	hist, err := survey.NewHistogram(table.Infidelities(), survey.BinEdgesFlag.Value())
	errutil.CheckWithContext(err, "Cannot bin infidelities")

	figureConfig := survey.DefaultFigureConfig()
	figureConfig.Title = survey.FigureTitleFlag.Value()
	figureConfig.YMax = survey.FigureYMaxFlag.Value()
	errutil.CheckWithContext(survey.RenderFigure(hist, summary, figureConfig, figurePath), "Cannot render histogram")
	logrus.Infof("Histogram of %d values in %d bins saved to %q", hist.Total(), len(hist.Counts), figurePath)

	q0, q1 := q0Flag.Value(), q1Flag.Value()
	pair := table.Pair(q0, q1)
	if len(pair) == 0 {
		logrus.Warnf("Pair (%d, %d) is not present in survey", q0, q1)
	} else {
		visualization.DrawTable(os.Stdout, visualization.NewRecordsTable(table, pair))
	}

	missing := table.MissingPairs()
	if len(missing) > 0 {
		visualization.PrintList(os.Stdout, visualization.NewPairsList(missing, "Missing pairs"))
	}

	results := map[string]string{
		"csv":           csvPath,
		"figure":        figurePath,
		"count":         strconv.Itoa(summary.Count),
		"mean":          strconv.FormatFloat(summary.Mean, 'g', -1, 64),
		"std":           strconv.FormatFloat(summary.StdDev, 'g', -1, 64),
		"min":           strconv.FormatFloat(summary.Min, 'g', -1, 64),
		"max":           strconv.FormatFloat(summary.Max, 'g', -1, 64),
		"missing_pairs": strconv.Itoa(len(missing)),
	}
	if len(pair) > 0 {
		results[fmt.Sprintf("pair_%d_%d", q0, q1)] = strconv.FormatFloat(pair[0].Infidelity, 'g', -1, 64)
	}
	errutil.CheckWithContext(storage.RecordMap(results, metadata.TypeSurvey), "Cannot record survey results")
}
