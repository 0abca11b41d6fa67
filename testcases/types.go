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

// Package testcases provides polygons with known geometry for testing
// and benchmarking the rasteriser.
package testcases

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/landarea/geometry"
)

// TestCase defines a single rasterisation test.
type TestCase struct {
	Name    string           // lowercase a-z and _ only
	Polygon geometry.Polygon // the geometry to rasterise
	PX      float64          // cell size in world units
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
