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

package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/twpayne/go-geos"
)

var (
	// ErrInvalid is returned by [Validate] for malformed polygons.
	ErrInvalid = errors.New("invalid polygon")

	// ErrEmpty is returned by [Validate] for polygons without vertices.
	ErrEmpty = errors.New("empty polygon")
)

// Validate checks that p is a valid polygon in the OGC simple features
// sense, as decided by GEOS, and that all coordinates are finite and
// non-negative.  Rings with fewer than three distinct vertices or zero
// area are rejected before GEOS sees them.
//
// The returned error wraps [ErrInvalid] or [ErrEmpty]; for polygons
// rejected by GEOS it carries the GEOS reason.
func Validate(p Polygon) error {
	if p == nil || p.IsEmpty() {
		return ErrEmpty
	}
	parts := p.Parts()

	polys := make([]*geos.Geom, len(parts))
	for k, s := range parts {
		coords := make([][][]float64, 0, 1+len(s.Holes))
		for _, r := range append([]Ring{s.Outer}, s.Holes...) {
			r = r.Open()
			if err := checkRing(r); err != nil {
				return err
			}
			coords = append(coords, ringCoords(r))
		}
		polys[k] = geos.NewPolygon(coords)
	}

	g := polys[0]
	if len(polys) > 1 {
		g = geos.NewCollection(geos.TypeIDMultiPolygon, polys)
	}
	if !g.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalid, g.IsValidReason())
	}
	return nil
}

// checkRing verifies the properties of a single ring, given in open form,
// which GEOS either does not check or cannot construct.
func checkRing(r Ring) error {
	for _, v := range r {
		if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
			return fmt.Errorf("%w: non-finite coordinate", ErrInvalid)
		}
		if v.X < 0 || v.Y < 0 {
			return fmt.Errorf("%w: negative coordinate (%g, %g)", ErrInvalid, v.X, v.Y)
		}
	}
	if len(r) < 3 {
		return fmt.Errorf("%w: too few points in ring", ErrInvalid)
	}
	if r.SignedArea() == 0 {
		return fmt.Errorf("%w: ring has zero area", ErrInvalid)
	}
	return nil
}

// ringCoords returns the closed coordinate sequence of an open ring.
func ringCoords(r Ring) [][]float64 {
	coords := make([][]float64, 0, len(r)+1)
	for _, v := range r {
		coords = append(coords, []float64{v.X, v.Y})
	}
	return append(coords, []float64{r[0].X, r[0].Y})
}
