// seehuhn.de/go/landarea - rasterise land-access polygons and integrate circular masks
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package geometry holds the polygon types used by the rasteriser.
//
// A polygon is either a [Simple] polygon (one outer ring with optional
// holes) or a [Multi] polygon (a list of simple polygons whose areas are
// treated independently).  All coordinates are expected to lie in the
// non-negative quadrant.
package geometry

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Polygon is implemented by [Simple] and [Multi].
type Polygon interface {
	// Parts returns the simple polygons making up the polygon.
	Parts() []Simple

	// Bounds returns the axis-aligned bounding box.
	Bounds() rect.Rect

	// Area returns the enclosed area, with holes removed.
	Area() float64

	// IsEmpty reports whether the polygon has no vertices at all.
	IsEmpty() bool

	isPolygon()
}

// Ring is a closed sequence of vertices.  The closing edge from the last
// vertex back to the first is implicit; a repeated first vertex at the
// end is allowed and ignored.
type Ring []vec.Vec2

// Open returns the ring without a repeated closing vertex and without
// consecutive duplicate vertices.
func (r Ring) Open() Ring {
	if len(r) == 0 {
		return r
	}
	out := make(Ring, 0, len(r))
	for _, v := range r {
		if len(out) > 0 && out[len(out)-1] == v {
			continue
		}
		out = append(out, v)
	}
	for len(out) > 1 && out[len(out)-1] == out[0] {
		out = out[:len(out)-1]
	}
	return out
}

// SignedArea returns the area enclosed by the ring, positive for
// counter-clockwise rings and negative for clockwise ones.
func (r Ring) SignedArea() float64 {
	n := len(r)
	if n < 3 {
		return 0
	}
	// shift to the first vertex to limit cancellation for large coordinates
	o := r[0]
	var a float64
	for i := 1; i+1 < n; i++ {
		p, q := r[i].Sub(o), r[i+1].Sub(o)
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// Bounds returns the bounding box of the ring.
func (r Ring) Bounds() rect.Rect {
	if len(r) == 0 {
		return rect.Rect{}
	}
	b := rect.Rect{LLx: r[0].X, LLy: r[0].Y, URx: r[0].X, URy: r[0].Y}
	for _, v := range r[1:] {
		b.LLx = min(b.LLx, v.X)
		b.LLy = min(b.LLy, v.Y)
		b.URx = max(b.URx, v.X)
		b.URy = max(b.URy, v.Y)
	}
	return b
}

// Contains reports whether p lies inside the ring, using the even-odd
// rule.  Points on the boundary may go either way.
func (r Ring) Contains(p vec.Vec2) bool {
	inside := false
	n := len(r)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := r[i], r[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// OnBoundary reports whether p lies on one of the ring's edges.
func (r Ring) OnBoundary(p vec.Vec2) bool {
	n := len(r)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		if orient(r[j], r[i], p) == 0 && onSegment(r[j], r[i], p) {
			return true
		}
	}
	return false
}

// Reversed returns a copy of the ring with the opposite orientation.
func (r Ring) Reversed() Ring {
	out := make(Ring, len(r))
	for i, v := range r {
		out[len(r)-1-i] = v
	}
	return out
}

// oriented returns r with the given orientation (ccw or cw).
func (r Ring) oriented(ccw bool) Ring {
	if (r.SignedArea() > 0) != ccw {
		return r.Reversed()
	}
	return r
}

// within reports whether ring r lies inside ring outer, judged by the
// first vertex of r which is not on the boundary of outer.
func (r Ring) within(outer Ring) bool {
	for _, v := range r {
		if outer.OnBoundary(v) {
			continue
		}
		return outer.Contains(v)
	}
	return false
}

// Simple is a polygon with one outer ring and any number of holes.
type Simple struct {
	Outer Ring
	Holes []Ring
}

func (Simple) isPolygon() {}

// Parts returns the polygon itself.
func (s Simple) Parts() []Simple {
	if s.IsEmpty() {
		return nil
	}
	return []Simple{s}
}

// Bounds returns the bounding box of the outer ring.
func (s Simple) Bounds() rect.Rect {
	return s.Outer.Bounds()
}

// Area returns the area of the outer ring minus the area of the holes.
func (s Simple) Area() float64 {
	a := math.Abs(s.Outer.SignedArea())
	for _, h := range s.Holes {
		a -= math.Abs(h.SignedArea())
	}
	return a
}

// IsEmpty reports whether the outer ring has no vertices.
func (s Simple) IsEmpty() bool {
	return len(s.Outer) == 0
}

// Path returns the polygon as a closed path, with the outer ring
// counter-clockwise and the holes clockwise.
func (s Simple) Path() *path.Data {
	p := &path.Data{}
	p = addRing(p, s.Outer.Open().oriented(true))
	for _, h := range s.Holes {
		p = addRing(p, h.Open().oriented(false))
	}
	return p
}

func addRing(p *path.Data, r Ring) *path.Data {
	if len(r) == 0 {
		return p
	}
	p = p.MoveTo(r[0])
	for _, v := range r[1:] {
		p = p.LineTo(v)
	}
	return p.Close()
}

// Multi is a collection of simple polygons.
type Multi []Simple

func (Multi) isPolygon() {}

// Parts returns the non-empty simple polygons.
func (m Multi) Parts() []Simple {
	var parts []Simple
	for _, s := range m {
		if !s.IsEmpty() {
			parts = append(parts, s)
		}
	}
	return parts
}

// Bounds returns the bounding box of all parts.
func (m Multi) Bounds() rect.Rect {
	var b rect.Rect
	first := true
	for _, s := range m {
		if s.IsEmpty() {
			continue
		}
		sb := s.Bounds()
		if first {
			b = sb
			first = false
			continue
		}
		b.LLx = min(b.LLx, sb.LLx)
		b.LLy = min(b.LLy, sb.LLy)
		b.URx = max(b.URx, sb.URx)
		b.URy = max(b.URy, sb.URy)
	}
	return b
}

// Area returns the sum of the areas of all parts.
func (m Multi) Area() float64 {
	var a float64
	for _, s := range m {
		a += s.Area()
	}
	return a
}

// IsEmpty reports whether all parts are empty.
func (m Multi) IsEmpty() bool {
	for _, s := range m {
		if !s.IsEmpty() {
			return false
		}
	}
	return true
}

// orient returns twice the signed area of the triangle abc.
func orient(a, b, c vec.Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// onSegment reports whether p, known to be collinear with ab, lies
// within the bounding box of ab.
func onSegment(a, b, p vec.Vec2) bool {
	return p.X >= min(a.X, b.X) && p.X <= max(a.X, b.X) &&
		p.Y >= min(a.Y, b.Y) && p.Y <= max(a.Y, b.Y)
}
