/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"image"
	"image/draw"
	"image/png"
	"io"

	xvector "golang.org/x/image/vector"

	"splined/internal/render"
	"splined/internal/vector"
)

// flattenSteps is the number of line segments per cubic when stroking.
const flattenSteps = 16

// Rasterize paints f into a new RGBA image.
// Fills are rasterized with the nonzero rule, the only one the rasterizer
// offers; strokes are built from one quad per flattened segment.
func Rasterize(f render.Frame, opt Options) *image.RGBA {
	pw, ph := opt.size()
	img := image.NewRGBA(image.Rect(0, 0, pw, ph))
	if opt.Background.A != 0 {
		draw.Draw(img, img.Bounds(), image.NewUniform(opt.Background.RGBA()), image.Point{}, draw.Src)
	}
	m := opt.view(f)
	z := xvector.NewRasterizer(pw, ph)
	for _, it := range f.Items {
		switch {
		case it.Fill.Enabled:
			z.Reset(pw, ph)
			z.DrawOp = draw.Over
			walk(it.Path, m, z)
			z.Draw(img, img.Bounds(), image.NewUniform(it.Fill.Color.RGBA()), image.Point{})
		case it.Stroke.Enabled:
			z.Reset(pw, ph)
			z.DrawOp = draw.Over
			width := max(it.Stroke.Width, 1)
			for _, poly := range it.Path.Transform(m).Flatten(flattenSteps) {
				for i := 1; i < len(poly); i++ {
					walk(vector.Polygon(poly[i-1], poly[i], width), vector.Identity, z)
				}
			}
			z.Draw(img, img.Bounds(), image.NewUniform(it.Stroke.Color.RGBA()), image.Point{})
		}
	}
	return img
}

// WritePNG rasterizes f and encodes it as PNG.
func WritePNG(w io.Writer, f render.Frame, opt Options) error {
	return png.Encode(w, Rasterize(f, opt))
}
