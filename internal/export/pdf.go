/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"splined/internal/render"
	"splined/internal/version"
	"splined/internal/vector"
)

// WritePDF writes f as a single-page PDF. Units are points and the page origin
// is top-left, matching curve space after the view transform.
func WritePDF(w io.Writer, f render.Frame, opt Options) error {
	pw, ph := opt.size()
	m := opt.view(f)

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: float64(pw), Ht: float64(ph)},
	})
	pdf.SetTitle(fmt.Sprintf("splined frame %d", f.Seq), false)
	pdf.SetCreator("splined "+version.String(), false)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	if opt.Background.A != 0 {
		setFillColor(pdf, opt.Background)
		pdf.Rect(0, 0, float64(pw), float64(ph), "F")
	}
	sink := pdfSink{pdf: pdf}
	for _, it := range f.Items {
		if it.Path.Empty() {
			continue
		}
		switch {
		case it.Fill.Enabled:
			setFillColor(pdf, it.Fill.Color)
			pdf.SetAlpha(float64(it.Fill.Color.A)/255, "Normal")
			walk(it.Path, m, sink)
			style := "F"
			if it.Fill.Rule == vector.EvenOdd {
				style = "F*"
			}
			pdf.DrawPath(style)
		case it.Stroke.Enabled:
			setDrawColor(pdf, it.Stroke.Color)
			pdf.SetAlpha(float64(it.Stroke.Color.A)/255, "Normal")
			pdf.SetLineWidth(float64(it.Stroke.Width))
			pdf.SetLineJoinStyle(pdfJoin(it.Stroke.Join))
			walk(it.Path, m, sink)
			pdf.DrawPath("D")
		}
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

type pdfSink struct{ pdf *gofpdf.Fpdf }

func (s pdfSink) MoveTo(x, y float32) { s.pdf.MoveTo(float64(x), float64(y)) }
func (s pdfSink) LineTo(x, y float32) { s.pdf.LineTo(float64(x), float64(y)) }
func (s pdfSink) CubeTo(x1, y1, x2, y2, x, y float32) {
	s.pdf.CurveBezierCubicTo(float64(x1), float64(y1), float64(x2), float64(y2), float64(x), float64(y))
}
func (s pdfSink) ClosePath() { s.pdf.ClosePath() }

func setDrawColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func pdfJoin(j vector.LineJoin) string {
	switch j {
	case vector.JoinRound:
		return "round"
	case vector.JoinBevel:
		return "bevel"
	}
	return "miter"
}
