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

import "seehuhn.de/go/landarea/geometry"

// largeCases contains test cases with bounding boxes > 65536 cells
// to exercise Approach B (active edge list) in the rasteriser.
var largeCases = []TestCase{
	// Simple large rectangle - tests basic Approach B functionality
	{
		Name:    "large_rectangle",
		Polygon: geometry.Simple{Outer: rectangle(50, 50, 462, 462)},
		PX:      1,
	},

	// Large square with a concentric hole
	{
		Name: "large_concentric",
		Polygon: geometry.Simple{
			Outer: rectangle(56, 56, 456, 456),
			Holes: []geometry.Ring{rectangle(156, 156, 356, 356).Reversed()},
		},
		PX: 1,
	},

	// Large diamond (diagonal edges) - tests sloped edges with Approach B
	{
		Name:    "large_diamond",
		Polygon: geometry.Simple{Outer: diamond(256, 256, 180)},
		PX:      1,
	},

	// Grid of rectangles - tests many parts
	{
		Name:    "large_grid",
		Polygon: rectangleGrid(8, 8, 512, 512, 4),
		PX:      1,
	},

	// Long, thin triangle crossing thousands of columns
	{
		Name:    "large_sliver",
		Polygon: geometry.Simple{Outer: triangle(0, 0, 4000, 17.25, 3990, 40)},
		PX:      1,
	},
}

// diamond builds a counter-clockwise diamond centred at (cx, cy).
func diamond(cx, cy, r float64) geometry.Ring {
	return geometry.Ring{pt(cx, cy-r), pt(cx+r, cy), pt(cx, cy+r), pt(cx-r, cy)}
}

// rectangleGrid builds a grid of disjoint rectangles.
func rectangleGrid(rows, cols, width, height int, gap float64) geometry.Multi {
	cellW := float64(width) / float64(cols)
	cellH := float64(height) / float64(rows)

	var m geometry.Multi
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x1 := float64(col)*cellW + gap
			y1 := float64(row)*cellH + gap
			x2 := float64(col+1)*cellW - gap
			y2 := float64(row+1)*cellH - gap
			m = append(m, geometry.Simple{Outer: rectangle(x1, y1, x2, y2)})
		}
	}
	return m
}
