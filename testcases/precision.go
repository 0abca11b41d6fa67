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

var precisionCases = []TestCase{
	// Subcell positioning
	{
		Name:    "subcell_offset_00",
		Polygon: geometry.Simple{Outer: offsetRectangle(20, 20, 24, 24, 0.0)},
		PX:      1,
	},
	{
		Name:    "subcell_offset_25",
		Polygon: geometry.Simple{Outer: offsetRectangle(20, 20, 24, 24, 0.25)},
		PX:      1,
	},
	{
		Name:    "subcell_offset_50",
		Polygon: geometry.Simple{Outer: offsetRectangle(20, 20, 24, 24, 0.5)},
		PX:      1,
	},
	{
		Name:    "subcell_offset_75",
		Polygon: geometry.Simple{Outer: offsetRectangle(20, 20, 24, 24, 0.75)},
		PX:      1,
	},

	// A shape much smaller than one cell
	{
		Name:    "tiny_in_cell",
		Polygon: geometry.Simple{Outer: triangle(1030, 2010, 1031, 2010, 1030.5, 2011)},
		PX:      100,
	},

	// National grid coordinates in metres with 100m cells
	{
		Name:    "large_coord",
		Polygon: geometry.Simple{Outer: triangle(451234.5, 1203456.25, 452987.75, 1203001, 452100, 1204999.5)},
		PX:      100,
	},
	{
		Name:    "large_coord_aligned",
		Polygon: geometry.Simple{Outer: rectangle(511700, 168300, 512000, 168500)},
		PX:      100,
	},
	{
		Name:    "float64_precision",
		Polygon: geometry.Simple{Outer: float64PrecisionShape()},
		PX:      1,
	},
}

// offsetRectangle builds a rectangular ring with a subcell offset applied to all coordinates.
func offsetRectangle(x1, y1, w, h, offset float64) geometry.Ring {
	return rectangle(x1+offset, y1+offset, x1+w+offset, y1+h+offset)
}

// float64PrecisionShape builds a shape using coordinates that require
// full float64 precision to represent accurately.
func float64PrecisionShape() geometry.Ring {
	// These values differ only in the low bits of float64
	base := 32.0
	delta1 := 0.123456789012345
	delta2 := 0.123456789012346

	return rectangle(base-10+delta1, base-10+delta1, base+10+delta2, base+10+delta2)
}
