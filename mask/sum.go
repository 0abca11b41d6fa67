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

package mask

import (
	"math"
	"slices"

	"seehuhn.de/go/landarea/grid"
)

// SumWithinCircle sums the values of img inside the circle.  The image
// covers [xmin,xmax]×[ymin,ymax], with row 0 at ymin.
//
// A cell is decided by the distances of its four corners from the
// centre: if all are ≥ R the cell is left out, if all are ≤ R the full
// value is added, otherwise the value is weighted by
// [FractionOfPixelWithinCircle] with ndiv sub-divisions.  Consequently a
// circle which does not contain any cell corner contributes nothing,
// even if it overlaps cells.  Cells with value zero are skipped.
func SumWithinCircle(img *grid.Grid, xmin, xmax, ymin, ymax float64, c Circle, ndiv int) (float64, error) {
	if ndiv < 1 {
		return 0, ErrInvalidDivisions
	}
	if err := c.check(); err != nil {
		return 0, err
	}
	if err := checkExtent(xmin, xmax, ymin, ymax); err != nil {
		return 0, err
	}

	// node coordinates relative to the centre of the circle
	xaxis := linspace(xmin, xmax, img.NX)
	yaxis := linspace(ymin, ymax, img.NY)
	for i := range xaxis {
		xaxis[i] -= c.CX
	}
	for i := range yaxis {
		yaxis[i] -= c.CY
	}

	// Only cells overlapping the bounding box of the circle can have a
	// corner inside.
	ix1, ix2 := cellSpan(xaxis, c.R)
	iy1, iy2 := cellSpan(yaxis, c.R)
	if ix1 >= ix2 || iy1 >= iy2 {
		return 0, nil
	}

	r := c.R
	ncol := ix2 - ix1
	lower := make([]float64, ncol+1)
	upper := make([]float64, ncol+1)
	nodeRow := func(dst []float64, iy int) {
		for i := range dst {
			dst[i] = math.Hypot(xaxis[ix1+i], yaxis[iy])
		}
	}

	var total float64
	nodeRow(lower, iy1)
	for iy := iy1; iy < iy2; iy++ {
		nodeRow(upper, iy+1)
		row := img.Data[iy*img.NX : (iy+1)*img.NX]
		for ix := ix1; ix < ix2; ix++ {
			v := row[ix]
			if v == 0 {
				continue
			}
			i := ix - ix1
			d00, d10, d01, d11 := lower[i], lower[i+1], upper[i], upper[i+1]
			if d00 >= r && d10 >= r && d01 >= r && d11 >= r {
				continue
			}
			if d00 <= r && d10 <= r && d01 <= r && d11 <= r {
				total += float64(v)
				continue
			}
			total += float64(v) * fraction(xaxis[ix], xaxis[ix+1], yaxis[iy], yaxis[iy+1], r, ndiv)
		}
		lower, upper = upper, lower
	}
	return total, nil
}

// cellSpan returns the range [i1, i2) of cells between the given
// increasing nodes which overlap the open interval (-r, r).
func cellSpan(nodes []float64, r float64) (i1, i2 int) {
	n := len(nodes) - 1

	// the first cell whose upper node is > -r
	k, found := slices.BinarySearch(nodes, -r)
	if found {
		k++
	}
	i1 = max(k-1, 0)

	// cells whose lower node is < r
	m, _ := slices.BinarySearch(nodes, r)
	i2 = min(m, n)
	return i1, i2
}

func checkExtent(xmin, xmax, ymin, ymax float64) error {
	for _, v := range []float64{xmin, xmax, ymin, ymax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidExtent
		}
	}
	if xmax <= xmin || ymax <= ymin {
		return ErrInvalidExtent
	}
	return nil
}
