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

import (
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// SummaryFileName is the name of the summary page written next to the library report.
const SummaryFileName = "forte_summary.html"

var summaryTemplate = template.Must(template.New("summary").Funcs(template.FuncMap{
	"pptt": func(infidelity float64) float64 { return infidelity * 1e4 },
}).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<table>
<tr><th>Dataset</th><td>{{.Results.Dataset}}</td></tr>
<tr><th>Protocol</th><td>{{.Results.Protocol}} ({{.Results.Config.Mode}}, model pack {{.Results.Config.ModelPack}})</td></tr>
<tr><th>Tolerance</th><td>{{.Results.Config.Tolerance}}</td></tr>
<tr><th>Memory limit</th><td>{{.Results.Config.MemLimit}}</td></tr>
<tr><th>Model parameters</th><td>{{.Results.NumParams}}</td></tr>
<tr><th>Fit duration</th><td>{{.Results.Duration}}</td></tr>
<tr><th>Library results</th><td>{{.Results.LibraryResultsDir}}</td></tr>
</table>
<h2>Entanglement infidelity</h2>
<table>
<tr><th>Operation</th><th>Infidelity</th><th>pptt</th></tr>
{{- range .Results.Estimates}}
<tr><td>{{.Operation}}</td><td>{{printf "%.3e" .EntanglementInfidelity}}</td><td>{{printf "%.1f" (pptt .EntanglementInfidelity)}}</td></tr>
{{- end}}
</table>
</body>
</html>
`))

// WriteSummary renders results overview page.
func WriteSummary(w io.Writer, results *Results, title string) error {
	if results == nil {
		return errors.New("no results to summarize")
	}
	err := summaryTemplate.Execute(w, struct {
		Title   string
		Results *Results
	}{title, results})
	return errors.Wrap(err, "cannot render summary")
}

// WriteSummaryFile writes summary page into dir and returns its path.
func WriteSummaryFile(dir string, results *Results, title string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "cannot create %q", dir)
	}
	path := filepath.Join(dir, SummaryFileName)
	file, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "cannot create %q", path)
	}
	defer file.Close()

	if err := WriteSummary(file, results, title); err != nil {
		return "", err
	}
	return path, file.Close()
}
