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

package testcases

import (
	"math"

	"seehuhn.de/go/landarea/geometry"
)

var fillCases = []TestCase{
	{
		Name:    "triangle",
		Polygon: geometry.Simple{Outer: triangle(10, 50, 32, 10, 54, 50)},
		PX:      1,
	},
	{
		Name:    "triangle_coarse",
		Polygon: geometry.Simple{Outer: triangle(10, 50, 32, 10, 54, 50)},
		PX:      8,
	},
	{
		Name:    "star",
		Polygon: geometry.Simple{Outer: star(32, 32, 25, 10)},
		PX:      1,
	},
	{
		Name:    "rectangle",
		Polygon: geometry.Simple{Outer: rectangle(10, 10, 44, 44)},
		PX:      1,
	},
	{
		Name:    "single_cell",
		Polygon: geometry.Simple{Outer: rectangle(300, 200, 400, 300)},
		PX:      100,
	},
	{
		Name:    "l_shape",
		Polygon: geometry.Simple{Outer: lShape(5, 5, 40, 30, 12)},
		PX:      3,
	},
	{
		Name: "square_with_hole",
		Polygon: geometry.Simple{
			Outer: rectangle(10, 10, 50, 50),
			Holes: []geometry.Ring{rectangle(20.5, 20.5, 39.5, 39.5).Reversed()},
		},
		PX: 2,
	},
	{
		Name: "two_parts",
		Polygon: geometry.Multi{
			{Outer: rectangle(1.5, 1.5, 6.5, 4)},
			{Outer: triangle(8, 8, 30, 9, 12, 25)},
		},
		PX: 2,
	},
	{
		Name:    "regular_polygon",
		Polygon: geometry.Simple{Outer: regularPolygon(500, 500, 420, 64)},
		PX:      50,
	},
}

// triangle builds a counter-clockwise triangular ring.
func triangle(x1, y1, x2, y2, x3, y3 float64) geometry.Ring {
	r := geometry.Ring{pt(x1, y1), pt(x2, y2), pt(x3, y3)}
	if r.SignedArea() < 0 {
		return r.Reversed()
	}
	return r
}

// rectangle builds a counter-clockwise rectangular ring.
func rectangle(x1, y1, x2, y2 float64) geometry.Ring {
	return geometry.Ring{pt(x1, y1), pt(x2, y1), pt(x2, y2), pt(x1, y2)}
}

// star builds a simple (not self-intersecting) star with n points,
// alternating between radius r and r/2.
func star(cx, cy, r float64, n int) geometry.Ring {
	ring := make(geometry.Ring, 2*n)
	for i := range ring {
		angle := float64(i)*math.Pi/float64(n) - math.Pi/2
		radius := r
		if i%2 == 1 {
			radius = r / 2
		}
		ring[i] = pt(cx+radius*math.Cos(angle), cy+radius*math.Sin(angle))
	}
	return ring
}

// lShape builds a concave L-shaped ring of width w, height h and arm
// thickness t with the corner at (x, y).
func lShape(x, y, w, h, t float64) geometry.Ring {
	return geometry.Ring{
		pt(x, y), pt(x+w, y), pt(x+w, y+t),
		pt(x+t, y+t), pt(x+t, y+h), pt(x, y+h),
	}
}

// regularPolygon builds a counter-clockwise regular polygon with n
// vertices on a circle.
func regularPolygon(cx, cy, r float64, n int) geometry.Ring {
	ring := make(geometry.Ring, n)
	for i := range ring {
		angle := 2 * math.Pi * float64(i) / float64(n)
		ring[i] = pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
	}
	return ring
}
