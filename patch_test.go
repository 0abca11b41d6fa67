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

package landarea

import (
	"maps"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/landarea/geometry"
	"seehuhn.de/go/landarea/grid"
	"seehuhn.de/go/landarea/testcases"
)

// TestAgainstClipping compares every cell with the area obtained by
// clipping the rings against the cell rectangle.
func TestAgainstClipping(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				patch, err := RasterisePolygon(tc.Polygon, tc.PX)
				require.NoError(t, err)
				if patch.NX*patch.NY > 1<<16 {
					t.Skip("too many cells for the clipping reference")
				}

				tol := 1e-9 * tc.PX * tc.PX
				for row := range patch.NY {
					for col := range patch.NX {
						ix, iy := patch.IX+col, patch.IY+row
						want := clippedArea(tc.Polygon, ix, iy, tc.PX)
						got := patch.At(col, row)
						if math.Abs(got-want) > tol {
							t.Errorf("cell (%d,%d): got %g, want %g", ix, iy, got, want)
						}
					}
				}
			})
		}
	}
}

func TestAreaConservation(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				patch, err := RasterisePolygon(tc.Polygon, tc.PX)
				require.NoError(t, err)

				area := tc.Polygon.Area()
				assert.InDelta(t, area, patch.Sum(), 1e-9*max(area, tc.PX*tc.PX))
				for i, a := range patch.Area {
					assert.GreaterOrEqual(t, a, 0.0, "cell %d", i)
					assert.LessOrEqual(t, a, tc.PX*tc.PX, "cell %d", i)
				}
			})
		}
	}
}

func TestSingleCellPolygon(t *testing.T) {
	const px = 100
	xmin, xmax, ymin, ymax := grid.CellBounds(3, 2, px)
	p := geometry.Simple{Outer: geometry.Ring{
		{X: xmin, Y: ymin}, {X: xmax, Y: ymin}, {X: xmax, Y: ymax}, {X: xmin, Y: ymax},
	}}

	patch, err := RasterisePolygon(p, px)
	require.NoError(t, err)
	assert.Equal(t, 3, patch.IX)
	assert.Equal(t, 2, patch.IY)
	assert.Equal(t, []float64{px * px}, patch.Area)
}

func TestRasterisePolygonOrientation(t *testing.T) {
	ccw := geometry.Ring{{X: 1, Y: 1}, {X: 9.5, Y: 2}, {X: 4, Y: 7.25}}
	a, err := RasterisePolygon(geometry.Simple{Outer: ccw}, 2)
	require.NoError(t, err)
	b, err := RasterisePolygon(geometry.Simple{Outer: ccw.Reversed()}, 2)
	require.NoError(t, err)
	assert.Equal(t, a.Area, b.Area)
}

// TestMultiAdditivity checks that a multi-polygon gives the sum of the
// patches of its parts.
func TestMultiAdditivity(t *testing.T) {
	const px = 4
	parts := geometry.Multi{
		{Outer: geometry.Ring{{X: 1, Y: 1}, {X: 13, Y: 2}, {X: 6, Y: 9}}},
		{Outer: geometry.Ring{{X: 10, Y: 10}, {X: 22, Y: 10}, {X: 22, Y: 17}, {X: 10, Y: 17}}},
	}
	whole, err := RasterisePolygon(parts, px)
	require.NoError(t, err)

	g, err := grid.New(8, 8, px)
	require.NoError(t, err)
	for _, s := range parts {
		patch, err := RasterisePolygon(s, px)
		require.NoError(t, err)
		require.NoError(t, g.Add(patch))
	}
	for row := range whole.NY {
		for col := range whole.NX {
			assert.InDelta(t, g.At(whole.IX+col, whole.IY+row), whole.At(col, row), 1e-4)
		}
	}
}

func TestHoleSubtraction(t *testing.T) {
	p := geometry.Simple{
		Outer: geometry.Ring{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}},
		Holes: []geometry.Ring{{{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 3}, {X: 1, Y: 3}}},
	}
	patch, err := RasterisePolygon(p, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 3, 3, 3}, patch.Area)
}

func TestRasterisePolygonErrors(t *testing.T) {
	p := geometry.Simple{Outer: geometry.Ring{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}}
	for _, px := range []float64{0, -1, 1.5, math.NaN(), math.Inf(1)} {
		_, err := RasterisePolygon(p, px)
		assert.ErrorIs(t, err, grid.ErrInvalidCellSize, "px=%g", px)
	}

	patch, err := RasterisePolygon(geometry.Multi{}, 1)
	require.NoError(t, err)
	assert.Zero(t, patch.NX*patch.NY)
}

// clippedArea returns the area of p inside cell (ix, iy), computed by
// Sutherland-Hodgman clipping of every ring.
func clippedArea(p geometry.Polygon, ix, iy int, px float64) float64 {
	xmin, xmax, ymin, ymax := grid.CellBounds(ix, iy, px)
	var total float64
	for _, s := range p.Parts() {
		total += math.Abs(clipRing(s.Outer, xmin, xmax, ymin, ymax).SignedArea())
		for _, h := range s.Holes {
			total -= math.Abs(clipRing(h, xmin, xmax, ymin, ymax).SignedArea())
		}
	}
	return total
}

func clipRing(r geometry.Ring, xmin, xmax, ymin, ymax float64) geometry.Ring {
	r = clipHalfPlane(r, func(v vec.Vec2) float64 { return v.X - xmin })
	r = clipHalfPlane(r, func(v vec.Vec2) float64 { return xmax - v.X })
	r = clipHalfPlane(r, func(v vec.Vec2) float64 { return v.Y - ymin })
	r = clipHalfPlane(r, func(v vec.Vec2) float64 { return ymax - v.Y })
	return r
}

// clipHalfPlane keeps the part of r where dist >= 0.
func clipHalfPlane(r geometry.Ring, dist func(vec.Vec2) float64) geometry.Ring {
	var out geometry.Ring
	n := len(r)
	for i := range r {
		a, b := r[i], r[(i+1)%n]
		da, db := dist(a), dist(b)
		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) && da != db {
			t := da / (da - db)
			out = append(out, a.Add(b.Sub(a).Mul(t)))
		}
	}
	return out
}
