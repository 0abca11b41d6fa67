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
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/landarea/geometry"
	"seehuhn.de/go/landarea/grid"
)

// RasterisePolygon computes the area of p inside every cell of the grid
// with cell size px.  The returned patch covers the cell range of the
// bounding box of p.  An empty polygon gives an empty patch.
//
// RasterisePolygon allocates a new Rasteriser on every call.  Use
// [Rasteriser.Polygon] to reuse buffers.
func RasterisePolygon(p geometry.Polygon, px float64) (*grid.Patch, error) {
	return NewRasteriser(rect.Rect{}).Polygon(p, px)
}

// Polygon computes the area of p inside every cell of the grid with cell
// size px.  The parts of a multi-polygon are filled separately and their
// areas added.  This overwrites the Origin, CellSize and Clip fields.
func (r *Rasteriser) Polygon(p geometry.Polygon, px float64) (*grid.Patch, error) {
	if err := grid.CheckCellSize(px); err != nil {
		return nil, err
	}
	parts := p.Parts()
	if len(parts) == 0 {
		return grid.NewPatch(0, 0, 0, 0), nil
	}

	ix1, iy1, ix2, iy2 := grid.CellRange(p.Bounds(), px)
	patch := grid.NewPatch(ix1, iy1, ix2-ix1, iy2-iy1)

	r.Reset(rect.Rect{URx: float64(patch.NX), URy: float64(patch.NY)})
	r.Origin = vec.Vec2{X: float64(ix1) * px, Y: float64(iy1) * px}
	r.CellSize = px

	cellArea := px * px
	emit := func(y, xMin int, coverage []float64) {
		row := patch.Area[y*patch.NX+xMin:]
		for i, c := range coverage {
			row[i] += clampCoverage(c) * cellArea
		}
	}
	for _, s := range parts {
		r.Fill(s.Path(), emit)
	}
	return patch, nil
}

// clampCoverage removes round-off outside [0, 1].
func clampCoverage(c float64) float64 {
	return min(max(c, 0), 1)
}
