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
	"fmt"
	"io"
	"strings"

	"splined/internal/render"
	"splined/internal/vector"
)

// WriteSVG writes f as a standalone SVG document. Outline fills keep their
// fill rule, so even-odd is preserved.
func WriteSVG(w io.Writer, f render.Frame, opt Options) error {
	pw, ph := opt.size()
	m := opt.view(f)

	var buf bytes.Buffer
	wf := func(format string, args ...any) { _, _ = fmt.Fprintf(&buf, format, args...) }

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%dpx\" height=\"%dpx\" viewBox=\"0 0 %d %d\">\n", pw, ph, pw, ph)
	if opt.Background.A != 0 {
		wf("  <rect x=\"0\" y=\"0\" width=\"%d\" height=\"%d\" fill=\"%s\"%s/>\n", pw, ph, svgColor(opt.Background), svgOpacity("fill", opt.Background))
	}
	for _, it := range f.Items {
		d := PathData(it.Path.Transform(m))
		if d == "" {
			continue
		}
		switch {
		case it.Fill.Enabled:
			wf("  <path class=\"%s\" d=\"%s\" fill=\"%s\"%s fill-rule=\"%s\"/>\n",
				it.Kind, d, svgColor(it.Fill.Color), svgOpacity("fill", it.Fill.Color), it.Fill.Rule)
		case it.Stroke.Enabled:
			wf("  <path class=\"%s\" d=\"%s\" fill=\"none\" stroke=\"%s\"%s stroke-width=\"%g\" stroke-linejoin=\"%s\"/>\n",
				it.Kind, d, svgColor(it.Stroke.Color), svgOpacity("stroke", it.Stroke.Color), it.Stroke.Width, svgJoin(it.Stroke.Join))
		}
	}
	wf("</svg>\n")
	_, err := w.Write(buf.Bytes())
	return err
}

// PathData formats p as an SVG path "d" attribute.
func PathData(p vector.Path) string {
	var b strings.Builder
	for _, c := range p.Cmds {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		switch c.Op {
		case vector.MoveTo:
			fmt.Fprintf(&b, "M%g %g", c.Data[0], c.Data[1])
		case vector.LineTo:
			fmt.Fprintf(&b, "L%g %g", c.Data[0], c.Data[1])
		case vector.CubicTo:
			fmt.Fprintf(&b, "C%g %g %g %g %g %g", c.Data[0], c.Data[1], c.Data[2], c.Data[3], c.Data[4], c.Data[5])
		case vector.Close:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

func svgColor(c vector.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func svgOpacity(attr string, c vector.Color) string {
	if c.A == 255 {
		return ""
	}
	return fmt.Sprintf(" %s-opacity=\"%.3g\"", attr, float64(c.A)/255)
}

func svgJoin(j vector.LineJoin) string {
	switch j {
	case vector.JoinRound:
		return "round"
	case vector.JoinBevel:
		return "bevel"
	}
	return "miter"
}
