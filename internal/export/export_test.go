/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"splined/internal/render"
	"splined/internal/scene"
	"splined/internal/spline"
	"splined/internal/vector"
)

func sampleFrame(t *testing.T) render.Frame {
	t.Helper()
	g := scene.NewGraph()
	if _, err := scene.SeedLens(g); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return render.Compose(g, spline.BuildAll(g), render.DefaultStyle())
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, sampleFrame(t), Options{Width: 400, Height: 300, Background: vector.Black}); err != nil {
		t.Fatalf("svg: %v", err)
	}
	s := buf.String()
	for _, want := range []string{`<svg `, `fill-rule="evenodd"`, `class="stroke"`, `class="marker"`, `</svg>`} {
		if !strings.Contains(s, want) {
			t.Fatalf("svg missing %q", want)
		}
	}
	if n := strings.Count(s, "<path "); n != 12 {
		t.Fatalf("path count = %d, want 12", n)
	}
}

func TestPathData(t *testing.T) {
	var p vector.Path
	p.MoveTo(1, 2)
	p.CubicTo(3, 4, 5, 6, 7, 8)
	p.LineTo(0, 0)
	p.Close()
	if got, want := PathData(p), "M1 2 C3 4 5 6 7 8 L0 0 Z"; got != want {
		t.Fatalf("PathData = %q, want %q", got, want)
	}
}

func TestRasterizeFillsOutline(t *testing.T) {
	f := sampleFrame(t)
	img := Rasterize(f, Options{Width: 200, Height: 200, Margin: 10, Background: vector.Black})
	// the lens interior at the canvas center takes the fill color
	c := img.RGBAAt(100, 100)
	fill := render.DefaultStyle().Fill
	if c.R != fill.R || c.G != fill.G || c.B != fill.B {
		t.Fatalf("center pixel = %v, want fill %v", c, fill)
	}
	if corner := img.RGBAAt(0, 0); corner.R != 0 || corner.A != 255 {
		t.Fatalf("corner pixel = %v, want opaque black", corner)
	}
}

func TestWritePNGDecodes(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, sampleFrame(t), Options{Width: 64, Height: 48}); err != nil {
		t.Fatalf("png: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Fatalf("bounds = %v", b)
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, sampleFrame(t), Options{Background: vector.White}); err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("not a pdf: %q", buf.Bytes()[:min(16, buf.Len())])
	}
}

func TestExportFileByExtension(t *testing.T) {
	dir := t.TempDir()
	f := sampleFrame(t)
	for _, name := range []string{"a.svg", "b.png", "sub/c.pdf"} {
		p := filepath.Join(dir, name)
		if err := ExportFile(p, f, Options{}); err != nil {
			t.Fatalf("export %s: %v", name, err)
		}
		st, err := os.Stat(p)
		if err != nil || st.Size() == 0 {
			t.Fatalf("missing or empty %s: %v", name, err)
		}
	}
	if err := ExportFile(filepath.Join(dir, "d.gif"), f, Options{}); err == nil {
		t.Fatalf("expected unknown format error")
	}
}

func TestBatchExportPresets(t *testing.T) {
	dir := t.TempDir()
	f := sampleFrame(t)
	for preset, want := range map[PresetName][]string{
		PresetWeb:   {"frame.png", "frame.svg"},
		PresetPrint: {"frame.pdf", "frame.svg"},
	} {
		written, err := BatchExport(f, BatchOptions{Preset: preset, OutDir: dir})
		if err != nil {
			t.Fatalf("batch %s: %v", preset, err)
		}
		if len(written) != len(want) {
			t.Fatalf("batch %s wrote %v", preset, written)
		}
		for i, w := range want {
			if p := filepath.Join(dir, string(preset), w); written[i] != p {
				t.Fatalf("batch %s: got %s, want %s", preset, written[i], p)
			}
		}
	}
	if _, err := BatchExport(f, BatchOptions{OutDir: dir, Formats: []string{"cbz"}}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
