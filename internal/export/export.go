/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export writes composed frames to SVG, PNG and PDF.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"splined/internal/render"
	"splined/internal/vector"
)

// Options controls the output canvas shared by all exporters.
// - Width/Height: output size in pixels (PNG, SVG) or points (PDF); 800x600 when zero.
// - View: maps curve space to output space; when nil the frame bounds are fitted with Margin.
// - Background: drawn first unless fully transparent.
type Options struct {
	Width      int
	Height     int
	Margin     float32
	Background vector.Color
	View       *vector.Affine2D
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 800
	}
	if h <= 0 {
		h = 600
	}
	return w, h
}

// view returns the curve-to-output transform for f.
func (o Options) view(f render.Frame) vector.Affine2D {
	if o.View != nil {
		return *o.View
	}
	w, h := o.size()
	b := f.Bounds()
	if b.W <= 0 || b.H <= 0 {
		return vector.Translate(float32(w)/2-b.X, float32(h)/2-b.Y)
	}
	s := min((float32(w)-2*o.Margin)/b.W, (float32(h)-2*o.Margin)/b.H)
	if s <= 0 {
		s = 1
	}
	c := b.Center()
	return vector.Translate(float32(w)/2, float32(h)/2).Mul(vector.Scale(s, s)).Mul(vector.Translate(-c.X, -c.Y))
}

// pathSink receives path commands in output coordinates. *xvector.Rasterizer
// satisfies it directly.
type pathSink interface {
	MoveTo(x, y float32)
	LineTo(x, y float32)
	CubeTo(x1, y1, x2, y2, x, y float32)
	ClosePath()
}

func walk(p vector.Path, m vector.Affine2D, s pathSink) {
	t := p.Transform(m)
	for _, c := range t.Cmds {
		switch c.Op {
		case vector.MoveTo:
			s.MoveTo(c.Data[0], c.Data[1])
		case vector.LineTo:
			s.LineTo(c.Data[0], c.Data[1])
		case vector.CubicTo:
			s.CubeTo(c.Data[0], c.Data[1], c.Data[2], c.Data[3], c.Data[4], c.Data[5])
		case vector.Close:
			s.ClosePath()
		}
	}
}

// Format is an output file format.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// FormatOf derives the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))); f {
	case FormatSVG, FormatPNG, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format for %q (want .svg, .png or .pdf)", path)
}

// Write encodes f in the given format.
func Write(w io.Writer, format Format, f render.Frame, opt Options) error {
	switch format {
	case FormatSVG:
		return WriteSVG(w, f, opt)
	case FormatPNG:
		return WritePNG(w, f, opt)
	case FormatPDF:
		return WritePDF(w, f, opt)
	}
	return fmt.Errorf("unknown format: %s", format)
}

// ExportFile writes f to path, choosing the format from the extension.
func ExportFile(path string, f render.Frame, opt Options) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", format, err)
	}
	bw := bufio.NewWriter(out)
	if err := Write(bw, format, f, opt); err != nil {
		_ = out.Close()
		return fmt.Errorf("encode %s: %w", format, err)
	}
	if err := bw.Flush(); err != nil {
		_ = out.Close()
		return fmt.Errorf("write %s: %w", format, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", format, err)
	}
	return nil
}
