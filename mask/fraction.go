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

// Package mask integrates rasters against hard circular masks.
//
// Cells which lie completely inside a circle contribute their full value,
// cells on the circumference are weighted by the fraction of the cell
// inside the circle, estimated by sampling ndiv×ndiv sub-cell centroids.
package mask

import (
	"errors"
	"fmt"
	"math"
)

// DefaultDivisions is the default number of sub-divisions per cell side
// used to estimate partial coverage.
const DefaultDivisions = 16

var (
	// ErrInvalidDivisions is returned when ndiv < 1.
	ErrInvalidDivisions = errors.New("number of sub-divisions must be at least 1")

	// ErrInvalidRadius is returned for negative or NaN radii.
	ErrInvalidRadius = errors.New("invalid circle radius")

	// ErrInvalidExtent is returned when an image extent is empty or
	// not finite.
	ErrInvalidExtent = errors.New("invalid image extent")
)

// Circle is a hard circular mask with centre (CX, CY) and radius R.
type Circle struct {
	CX, CY float64
	R      float64
}

func (c Circle) check() error {
	if math.IsNaN(c.R) || c.R < 0 {
		return fmt.Errorf("%w: %g", ErrInvalidRadius, c.R)
	}
	return nil
}

// FractionOfPixelWithinCircle estimates the fraction of the rectangle
// [xmin,xmax]×[ymin,ymax] which lies inside the circle.  The rectangle is
// split into ndiv×ndiv equal sub-cells, and the result is the fraction of
// sub-cell centroids at distance ≤ R from the centre.  An empty or
// non-finite rectangle gives [ErrInvalidExtent].
func FractionOfPixelWithinCircle(xmin, xmax, ymin, ymax float64, c Circle, ndiv int) (float64, error) {
	if ndiv < 1 {
		return 0, ErrInvalidDivisions
	}
	if err := c.check(); err != nil {
		return 0, err
	}
	if err := checkExtent(xmin, xmax, ymin, ymax); err != nil {
		return 0, err
	}
	return fraction(xmin-c.CX, xmax-c.CX, ymin-c.CY, ymax-c.CY, c.R, ndiv), nil
}

// fraction is FractionOfPixelWithinCircle for a circle centred at the
// origin, with arguments already checked.
func fraction(xmin, xmax, ymin, ymax, r float64, ndiv int) float64 {
	dx := (xmax - xmin) / float64(ndiv)
	dy := (ymax - ymin) / float64(ndiv)
	count := 0
	for iy := range ndiv {
		y := ymin + (float64(iy)+0.5)*dy
		for ix := range ndiv {
			x := xmin + (float64(ix)+0.5)*dx
			if math.Hypot(x, y) <= r {
				count++
			}
		}
	}
	return float64(count) / float64(ndiv*ndiv)
}

// linspace returns n+1 evenly spaced nodes from start to stop.  The last
// node equals stop exactly.
func linspace(start, stop float64, n int) []float64 {
	nodes := make([]float64, n+1)
	step := (stop - start) / float64(n)
	for i := range n {
		nodes[i] = start + float64(i)*step
	}
	nodes[n] = stop
	return nodes
}

// Radii returns n evenly spaced radii in (0, max], ending at max.
func Radii(max float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	return linspace(0, max, n)[1:]
}
