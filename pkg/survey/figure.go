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
	"image/color"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// FigureConfig describes the survey histogram figure.
type FigureConfig struct {
	Title  string
	XLabel string
	YLabel string
	// YMin and YMax fix the occurrence axis range.
	YMin float64
	YMax float64
	// Width and Height are in inches.
	Width  float64
	Height float64
	// AnnotationSize is font size of the statistics box in points.
	AnnotationSize float64
	BarColor       color.Color
	BoxColor       color.Color
}

// DefaultFigureConfig returns configuration of the published survey figure.
func DefaultFigureConfig() FigureConfig {
	return FigureConfig{
		Title:          FigureTitleFlag.Value(),
		XLabel:         "Infidelity [pptt]",
		YLabel:         "Occurrence",
		YMin:           0,
		YMax:           FigureYMaxFlag.Value(),
		Width:          10,
		Height:         8,
		AnnotationSize: 14,
		BarColor:       color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
		BoxColor:       color.NRGBA{R: 0xff, G: 0xa5, B: 0x00, A: 0xcc},
	}
}

// NewFigure builds histogram plot on log-scaled x axis annotated with summary.
func NewFigure(hist Histogram, summary Summary, config FigureConfig) (*plot.Plot, error) {
	if len(hist.Counts) == 0 || len(hist.Edges) != len(hist.Counts)+1 {
		return nil, errors.Errorf("malformed histogram: %d edges, %d counts", len(hist.Edges), len(hist.Counts))
	}

	p := plot.New()
	p.Title.Text = config.Title
	p.X.Label.Text = config.XLabel
	p.Y.Label.Text = config.YLabel
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}

	bins := make([]plotter.HistogramBin, len(hist.Counts))
	for i, count := range hist.Counts {
		bins[i] = plotter.HistogramBin{Min: hist.Edges[i], Max: hist.Edges[i+1], Weight: float64(count)}
	}
	histogram := &plotter.Histogram{
		Bins:      bins,
		Width:     bins[0].Max - bins[0].Min,
		FillColor: config.BarColor,
		LineStyle: plotter.DefaultLineStyle,
	}

	p.Add(plotter.NewGrid(), histogram, &annotation{
		text:     summary.Annotation(),
		size:     vg.Points(config.AnnotationSize),
		boxColor: config.BoxColor,
		// Top left corner, in fractions of the data area.
		x: 0.05,
		y: 0.95,
	})
	p.X.Min, p.X.Max = hist.Edges[0], hist.Edges[len(hist.Edges)-1]
	p.Y.Min, p.Y.Max = config.YMin, config.YMax
	return p, nil
}

// RenderFigure saves the histogram figure to path. Image format follows the extension
// (png, svg, pdf, eps, jpg, tiff).
func RenderFigure(hist Histogram, summary Summary, config FigureConfig, path string) error {
	p, err := NewFigure(hist, summary, config)
	if err != nil {
		return err
	}
	if err := p.Save(vg.Length(config.Width)*vg.Inch, vg.Length(config.Height)*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "cannot save figure %q", path)
	}
	return nil
}

// annotation draws text in a filled box anchored at its top left corner.
// Position is relative to the data area, so it does not depend on axis scales.
type annotation struct {
	text     string
	size     vg.Length
	boxColor color.Color
	x, y     float64
}

// Plot implements plot.Plotter.
func (a *annotation) Plot(c draw.Canvas, _ *plot.Plot) {
	style := text.Style{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, a.size),
		XAlign:  text.XLeft,
		YAlign:  text.YTop,
		Handler: plot.DefaultTextHandler,
	}

	anchor := vg.Point{
		X: c.Min.X + vg.Length(a.x)*(c.Max.X-c.Min.X),
		Y: c.Min.Y + vg.Length(a.y)*(c.Max.Y-c.Min.Y),
	}
	pad := a.size / 3
	width, height := style.Width(a.text), style.Height(a.text)
	c.FillPolygon(a.boxColor, []vg.Point{
		{X: anchor.X - pad, Y: anchor.Y + pad},
		{X: anchor.X + width + pad, Y: anchor.Y + pad},
		{X: anchor.X + width + pad, Y: anchor.Y - height - pad},
		{X: anchor.X - pad, Y: anchor.Y - height - pad},
	})
	c.FillText(style, anchor, a.text)
}
