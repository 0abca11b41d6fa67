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

// Package grid describes the regular square-cell grid that land-access
// polygons are rasterised onto, together with the dense rasters living on
// it.
//
// World coordinates are non-negative.  Cell (iy, ix) of a grid with cell
// size px spans [ix*px, (ix+1)*px) × [iy*px, (iy+1)*px), and row 0 lies
// at the minimum y edge.
package grid

import (
	"errors"
	"math"

	"seehuhn.de/go/geom/rect"
)

// ErrInvalidCellSize is returned when a cell size is not a positive integer.
var ErrInvalidCellSize = errors.New("cell size must be a positive integer")

// CheckCellSize verifies that px can be used as a cell size.
func CheckCellSize(px float64) error {
	if math.IsNaN(px) || math.IsInf(px, 0) || px <= 0 || px != math.Trunc(px) {
		return ErrInvalidCellSize
	}
	return nil
}

// CellBounds returns the world rectangle covered by cell (ix, iy).
func CellBounds(ix, iy int, px float64) (xmin, xmax, ymin, ymax float64) {
	xmin = float64(ix) * px
	xmax = float64(ix+1) * px
	ymin = float64(iy) * px
	ymax = float64(iy+1) * px
	return xmin, xmax, ymin, ymax
}

// CellRange returns the half-open range of cell indices [ix1, ix2) ×
// [iy1, iy2) which covers the bounding box.  Partially covered cells at
// the edges are included; a box ending exactly on a cell boundary does
// not pull in the next cell.
func CellRange(bbox rect.Rect, px float64) (ix1, iy1, ix2, iy2 int) {
	ix1 = int(math.Floor(bbox.LLx / px))
	iy1 = int(math.Floor(bbox.LLy / px))
	ix2 = int(math.Ceil(bbox.URx / px))
	iy2 = int(math.Ceil(bbox.URy / px))
	return ix1, iy1, ix2, iy2
}

// Size returns the number of cells needed in each direction so that a
// grid anchored at the origin covers the extent.
func Size(extent rect.Rect, px float64) (nx, ny int) {
	nx = int(math.Ceil(extent.URx / px))
	ny = int(math.Ceil(extent.URy / px))
	return nx, ny
}
