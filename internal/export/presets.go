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
	"path/filepath"
	"strings"

	"splined/internal/render"
	"splined/internal/vector"
)

// PresetName represents a named export preset.
type PresetName string

const (
	PresetWeb   PresetName = "web"
	PresetPrint PresetName = "print"
)

// BatchOptions controls writing one frame in several formats.
//
// Files are named <Base>.<format> inside OutDir/<preset>. Empty Base means "frame".
//
//nolint:revive // keep fields explicit for clarity
type BatchOptions struct {
	Preset  PresetName
	Formats []string // allowed: svg, png, pdf; empty means preset defaults
	OutDir  string
	Base    string
	Canvas  Options // zero Width/Height/Background take the preset's values
}

// BatchExport writes f once per requested format and returns the written paths.
func BatchExport(f render.Frame, opt BatchOptions) ([]string, error) {
	formats := opt.Formats
	if len(formats) == 0 {
		formats = presetDefaultFormats(opt.Preset)
	}
	base := opt.Base
	if base == "" {
		base = "frame"
	}
	dir := opt.OutDir
	if opt.Preset != "" {
		dir = filepath.Join(dir, string(opt.Preset))
	}
	canvas := presetCanvas(opt.Preset, opt.Canvas)

	var written []string
	for _, name := range formats {
		name = strings.ToLower(strings.TrimSpace(name))
		out := filepath.Join(dir, base+"."+name)
		if _, err := FormatOf(out); err != nil {
			return written, fmt.Errorf("unknown format: %s", name)
		}
		if err := ExportFile(out, f, canvas); err != nil {
			return written, fmt.Errorf("%s: %w", name, err)
		}
		written = append(written, out)
	}
	return written, nil
}

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetWeb:
		return []string{"png", "svg"}
	case PresetPrint:
		return []string{"pdf", "svg"}
	default:
		return []string{"svg"}
	}
}

// presetCanvas fills unset canvas fields: web gets a dark screen-sized canvas,
// print an A4 landscape page on white.
func presetCanvas(p PresetName, o Options) Options {
	w, h, m, bg := 1280, 720, float32(24), vector.Color{R: 24, G: 24, B: 28, A: 255}
	if p == PresetPrint {
		w, h, m, bg = 842, 595, 36, vector.White
	}
	if o.Width <= 0 {
		o.Width = w
	}
	if o.Height <= 0 {
		o.Height = h
	}
	if o.Margin <= 0 {
		o.Margin = m
	}
	if o.Background == (vector.Color{}) {
		o.Background = bg
	}
	return o
}
