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
	"path/filepath"
	"strconv"
	"time"

	"github.com/forte-bench/forte/pkg/conf"
	"github.com/forte-bench/forte/pkg/executor"
	"github.com/forte-bench/forte/pkg/experiment"
	"github.com/forte-bench/forte/pkg/experiment/logger"
	"github.com/forte-bench/forte/pkg/gst"
	"github.com/forte-bench/forte/pkg/metadata"
	"github.com/forte-bench/forte/pkg/utils/errutil"
	"github.com/forte-bench/forte/pkg/visualization"
	"github.com/sirupsen/logrus"
)

const appName = "gst"

var (
	datasetFlag = conf.NewStringFlag("gst_dataset", "Directory of the GST dataset (dataset.txt and edesign)", "data/smq2Q_XYXX")
	hostFlag    = conf.NewStringFlag("gst_host", "Host running the fit over SSH (local when empty)", "")
	loadFlag    = conf.NewStringFlag("gst_load_results", "Skip the fit and write reports of results saved in given file", "")
)

func main() {
	start := time.Now()
	conf.SetAppName(appName)
	conf.SetHelp(`GST fits a gate set model of the two-qubit XX gate to the dataset with pyGSTi,
saves the results and writes the HTML report.`)
	experiment.Configure()

	local := executor.IsLocal(hostFlag.Value())
	config := gst.DefaultConfig()
	reportConfig := gst.DefaultReportConfig()
	dataset, loadPath := datasetFlag.Value(), loadFlag.Value()
	if local {
		// Remote paths are resolved on the remote host.
		errutil.CheckWithContext(experiment.AbsPaths(&dataset, &loadPath, &config.ResultsDir, &reportConfig.Dir),
			"Cannot resolve input and output paths")
	}

	runID, err := experiment.NewRunID()
	errutil.Check(err)
	runDirectory := logger.Initialize(appName, runID)
	defer func() {
		visualization.PrintRunMetadata(os.Stdout, visualization.NewRunMetadata(runID, runDirectory))
	}()

	storage, err := experiment.StartMetadata(runID, start)
	errutil.CheckWithContext(err, "Cannot record run metadata")

	shell, err := executor.NewShell(hostFlag.Value())
	errutil.CheckWithContext(err, "Cannot prepare executor")
	backend := gst.NewBackend(shell, gst.PythonFlag.Value())

	var results *gst.Results
	if loadPath != "" {
		results, err = gst.LoadResults(loadPath)
		errutil.CheckWithContext(err, "Cannot load GST results")
		logrus.Infof("Loaded results of run %q from %q", results.RunID, loadPath)
	} else {
		results, err = backend.Run(dataset, config)
		errutil.CheckWithContext(err, "GST fit failed")
		results.RunID = runID
		manifest := filepath.Join(runDirectory, gst.ManifestFileName)
		errutil.CheckWithContext(results.Save(manifest), "Cannot save GST results")
		logrus.Infof("Results saved to %q", manifest)
	}

	errutil.CheckWithContext(backend.WriteReport(results, reportConfig), "Cannot write GST report")
	if local {
		summaryPath, err := gst.WriteSummaryFile(reportConfig.Dir, results, reportConfig.Title)
		errutil.CheckWithContext(err, "Cannot write estimates summary")
		logrus.Infof("Estimates summary written to %q", summaryPath)
	}

	estimates := map[string]string{}
	for _, estimate := range results.Estimates {
		estimates[estimate.Operation] = strconv.FormatFloat(estimate.EntanglementInfidelity, 'g', -1, 64)
	}
	visualization.DrawTable(os.Stdout, visualization.NewMapTable([]string{"Operation", "Entanglement infidelity"}, estimates))
	fmt.Printf("Report of %s written to %q\n", results.Protocol, reportConfig.Dir)

	estimates["dataset"] = results.Dataset
	estimates["library_results_dir"] = results.LibraryResultsDir
	estimates["report_dir"] = reportConfig.Dir
	estimates["duration"] = results.Duration().String()
	errutil.CheckWithContext(storage.RecordMap(estimates, metadata.TypeGST), "Cannot record GST results")
}
