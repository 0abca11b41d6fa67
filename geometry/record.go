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
	"cmp"
	"fmt"
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
)

// Kind is the shape type code of a shapefile record.
type Kind int

// Shape types defined by the ESRI shapefile specification.
const (
	KindNull        Kind = 0
	KindPoint       Kind = 1
	KindPolyLine    Kind = 3
	KindPolygon     Kind = 5
	KindMultiPoint  Kind = 8
	KindPointZ      Kind = 11
	KindPolyLineZ   Kind = 13
	KindPolygonZ    Kind = 15
	KindMultiPointZ Kind = 18
	KindPointM      Kind = 21
	KindPolyLineM   Kind = 23
	KindPolygonM    Kind = 25
	KindMultiPointM Kind = 28
	KindMultiPatch  Kind = 31
)

// IsPolygon reports whether records of this kind describe polygons.
// Z and M values are ignored, so PolygonZ and PolygonM qualify.
func (k Kind) IsPolygon() bool {
	return k == KindPolygon || k == KindPolygonZ || k == KindPolygonM
}

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindPoint:
		return "Point"
	case KindPolyLine:
		return "PolyLine"
	case KindPolygon:
		return "Polygon"
	case KindMultiPoint:
		return "MultiPoint"
	case KindPointZ:
		return "PointZ"
	case KindPolyLineZ:
		return "PolyLineZ"
	case KindPolygonZ:
		return "PolygonZ"
	case KindMultiPointZ:
		return "MultiPointZ"
	case KindPointM:
		return "PointM"
	case KindPolyLineM:
		return "PolyLineM"
	case KindPolygonM:
		return "PolygonM"
	case KindMultiPointM:
		return "MultiPointM"
	case KindMultiPatch:
		return "MultiPatch"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Record is one geometry record as delivered by a shapefile reader.
type Record struct {
	Kind  Kind
	BBox  rect.Rect
	Rings []Ring
}

// Polygon converts the rings of the record into a polygon.
// See [FromRings].
func (r Record) Polygon() Polygon {
	return FromRings(r.Rings)
}

// FromRings groups a flat list of rings into a polygon.
//
// Rings are classified by nesting depth: a ring inside an even number of
// other rings is an outer ring, a ring inside an odd number is a hole of
// the smallest enclosing outer ring.  Outer rings are oriented
// counter-clockwise and holes clockwise.  A single outer ring gives a
// [Simple] polygon, several give a [Multi] polygon and none gives an
// empty [Multi].
func FromRings(rings []Ring) Polygon {
	type ringInfo struct {
		ring   Ring
		area   float64
		bounds rect.Rect
		depth  int
		parent int
	}

	infos := make([]*ringInfo, 0, len(rings))
	for _, r := range rings {
		r = r.Open()
		if len(r) == 0 {
			continue
		}
		infos = append(infos, &ringInfo{
			ring:   r,
			area:   math.Abs(r.SignedArea()),
			bounds: r.Bounds(),
			parent: -1,
		})
	}

	// Process larger rings first, so that the parent of a ring is always
	// classified before the ring itself.
	slices.SortStableFunc(infos, func(a, b *ringInfo) int {
		return cmp.Compare(b.area, a.area)
	})

	for i, ri := range infos {
		for j := i - 1; j >= 0; j-- {
			rj := infos[j]
			if !contains(rj.bounds, ri.bounds) || rj.area == ri.area {
				continue
			}
			if ri.ring.within(rj.ring) {
				// the smallest enclosing ring sits deepest in the nesting
				ri.depth = rj.depth + 1
				ri.parent = j
				break
			}
		}
	}

	var parts Multi
	index := make(map[int]int) // info index -> part index
	for i, ri := range infos {
		if ri.depth%2 == 0 {
			index[i] = len(parts)
			parts = append(parts, Simple{Outer: ri.ring.oriented(true)})
		}
	}
	for _, ri := range infos {
		if ri.depth%2 == 1 {
			k := index[ri.parent]
			parts[k].Holes = append(parts[k].Holes, ri.ring.oriented(false))
		}
	}

	if len(parts) == 1 {
		return parts[0]
	}
	return parts
}

// contains reports whether rectangle b lies inside rectangle a.
func contains(a, b rect.Rect) bool {
	return b.LLx >= a.LLx && b.LLy >= a.LLy && b.URx <= a.URx && b.URy <= a.URy
}
