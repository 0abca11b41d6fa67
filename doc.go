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

// Package landarea converts land-access polygons into rasters of covered
// area per grid cell.
//
// The central primitive is [RasterisePolygon], which returns the exact
// area of the intersection between a polygon and every cell of a
// regular square grid.  [Rasterise] applies it to a stream of shapefile
// records in parallel and accumulates the results into one
// [grid.Grid].  Circular-mask queries on the resulting rasters are
// implemented in the sub-package mask.
package landarea

//go:generate go run ./testcases/export
