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

import "errors"

var (
	// ErrNotPolygon is returned when a record is not of polygon type.
	// This aborts the whole run.
	ErrNotPolygon = errors.New("record is not a polygon")

	// ErrRasterise wraps failures inside a rasterisation worker.
	ErrRasterise = errors.New("rasterisation failed")

	// ErrConfig indicates invalid run options.
	ErrConfig = errors.New("invalid configuration")
)
