/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Path commands and shapes.

type PathOp uint8

const (
	MoveTo PathOp = iota
	LineTo
	CubicTo // cubic bezier (cx1, cy1, cx2, cy2, x, y)
	Close
)

func (op PathOp) String() string {
	switch op {
	case MoveTo:
		return "move-to"
	case LineTo:
		return "line-to"
	case CubicTo:
		return "cubic-to"
	case Close:
		return "close"
	}
	return "unknown"
}

type PathCmd struct {
	Op   PathOp
	Data [6]float32 // enough for cubic; unused slots are zero
}

// Point returns the i-th point of the command (0 for MoveTo/LineTo end, 0..2 for CubicTo).
func (c PathCmd) Point(i int) Pt { return Pt{c.Data[2*i], c.Data[2*i+1]} }

// End returns the point the command leaves the pen at. ok is false for Close.
func (c PathCmd) End() (Pt, bool) {
	switch c.Op {
	case MoveTo, LineTo:
		return c.Point(0), true
	case CubicTo:
		return c.Point(2), true
	}
	return Pt{}, false
}

type Path struct{ Cmds []PathCmd }

func (p *Path) MoveTo(x, y float32) {
	p.Cmds = append(p.Cmds, PathCmd{Op: MoveTo, Data: [6]float32{x, y}})
}
func (p *Path) LineTo(x, y float32) {
	p.Cmds = append(p.Cmds, PathCmd{Op: LineTo, Data: [6]float32{x, y}})
}
func (p *Path) CubicTo(cx1, cy1, cx2, cy2, x, y float32) {
	p.Cmds = append(p.Cmds, PathCmd{Op: CubicTo, Data: [6]float32{cx1, cy1, cx2, cy2, x, y}})
}
func (p *Path) Close() { p.Cmds = append(p.Cmds, PathCmd{Op: Close}) }

func (p *Path) MoveToPt(a Pt)          { p.MoveTo(a.X, a.Y) }
func (p *Path) LineToPt(a Pt)          { p.LineTo(a.X, a.Y) }
func (p *Path) CubicToPt(c1, c2, e Pt) { p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, e.X, e.Y) }

// Empty reports whether the path has no commands.
func (p *Path) Empty() bool { return len(p.Cmds) == 0 }

// Count returns how many commands of the given op the path holds.
func (p *Path) Count(op PathOp) int {
	n := 0
	for _, c := range p.Cmds {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Transform returns a copy of the path with m applied to every point.
func (p *Path) Transform(m Affine2D) Path {
	out := Path{Cmds: make([]PathCmd, len(p.Cmds))}
	for i, c := range p.Cmds {
		n := 0
		switch c.Op {
		case MoveTo, LineTo:
			n = 1
		case CubicTo:
			n = 3
		}
		for j := 0; j < n; j++ {
			q := m.Apply(c.Point(j))
			c.Data[2*j], c.Data[2*j+1] = q.X, q.Y
		}
		out.Cmds[i] = c
	}
	return out
}

// Bounds returns an axis-aligned bounding box of the path using a simple
// approximation by considering control points. This is sufficient for
// viewport fitting and selection rectangles.
func (p *Path) Bounds() Rect {
	minX, minY := float32(+1e9), float32(+1e9)
	maxX, maxY := float32(-1e9), float32(-1e9)
	grow := func(q Pt) {
		minX, minY = min(minX, q.X), min(minY, q.Y)
		maxX, maxY = max(maxX, q.X), max(maxY, q.Y)
	}
	for _, c := range p.Cmds {
		switch c.Op {
		case MoveTo, LineTo:
			grow(c.Point(0))
		case CubicTo:
			grow(c.Point(0))
			grow(c.Point(1))
			grow(c.Point(2))
		case Close:
			// no-op for bounds
		}
	}
	if minX > maxX || minY > maxY {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Flatten approximates the path with polylines, one per subpath. Each cubic is
// sampled with the given number of steps. Closed subpaths end at their start point.
func (p *Path) Flatten(steps int) [][]Pt {
	if steps < 2 {
		steps = 2
	}
	var out [][]Pt
	var cur, start Pt
	var poly []Pt
	flush := func() {
		if len(poly) > 1 {
			out = append(out, poly)
		}
		poly = nil
	}
	for _, c := range p.Cmds {
		switch c.Op {
		case MoveTo:
			flush()
			cur = c.Point(0)
			start = cur
			poly = append(poly, cur)
		case LineTo:
			cur = c.Point(0)
			poly = append(poly, cur)
		case CubicTo:
			c1, c2, end := c.Point(0), c.Point(1), c.Point(2)
			for s := 1; s <= steps; s++ {
				poly = append(poly, CubicAt(cur, c1, c2, end, float32(s)/float32(steps)))
			}
			cur = end
		case Close:
			if len(poly) > 0 && cur != start {
				poly = append(poly, start)
			}
			cur = start
			flush()
		}
	}
	flush()
	return out
}

// CubicAt evaluates a cubic bezier at t.
func CubicAt(p0, p1, p2, p3 Pt, t float32) Pt {
	// B(t) = (1-t)^3 p0 + 3(1-t)^2 t p1 + 3(1-t) t^2 p2 + t^3 p3
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return Pt{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// kappa is the cubic control distance for a quarter circle of radius 1.
const kappa = 0.5522847498

// Circle returns a closed four-segment cubic approximation of a circle.
func Circle(center Pt, r float32) Path {
	var p Path
	k := r * kappa
	cx, cy := center.X, center.Y
	p.MoveTo(cx+r, cy)
	p.CubicTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	p.CubicTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	p.CubicTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	p.CubicTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	p.Close()
	return p
}

// Segment returns an open two-point path.
func Segment(a, b Pt) Path {
	var p Path
	p.MoveToPt(a)
	p.LineToPt(b)
	return p
}

// Polygon returns the closed outline of a thick line from a to b, used by
// rasterizers that cannot stroke natively. Degenerate segments yield an empty path.
func Polygon(a, b Pt, width float32) Path {
	d := b.Sub(a)
	l := d.Len()
	if l == 0 || width <= 0 {
		return Path{}
	}
	n := Pt{-d.Y / l, d.X / l}.Mul(width / 2)
	var p Path
	p.MoveToPt(a.Add(n))
	p.LineToPt(b.Add(n))
	p.LineToPt(b.Sub(n))
	p.LineToPt(a.Sub(n))
	p.Close()
	return p
}

