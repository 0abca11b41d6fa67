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

// Package shapefile reads polygon records from ESRI shapefiles.
package shapefile

import (
	"fmt"
	"iter"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/landarea/geometry"
)

// Reader reads the records of a shapefile.
type Reader struct {
	name string
	dec  *shp.Decoder
}

// Open opens the shapefile with the given name (the .shp file; the .dbf
// and .shx files must be next to it).
func Open(name string) (*Reader, error) {
	dec, err := shp.NewDecoder(name)
	if err != nil {
		return nil, fmt.Errorf("shapefile %q: %w", name, err)
	}
	return &Reader{name: name, dec: dec}, nil
}

// Records returns an iterator over all records of the file.  Decoding
// errors are reported as the final element of the sequence.
// The iterator can be used only once.
func (r *Reader) Records() iter.Seq2[geometry.Record, error] {
	return func(yield func(geometry.Record, error) bool) {
		for {
			g, _, more := r.dec.DecodeRowFields()
			if !more {
				break
			}
			if !yield(Convert(g)) {
				return
			}
		}
		if err := r.dec.Error(); err != nil {
			yield(geometry.Record{}, fmt.Errorf("shapefile %q: %w", r.name, err))
		}
	}
}

// Close releases the underlying files.
func (r *Reader) Close() error {
	r.dec.Close()
	return nil
}

// Convert turns a decoded geometry into a record.  Polygons and
// multi-polygons become polygon records carrying all of their rings;
// other geometries keep only their kind and bounding box.
func Convert(g geom.Geom) (geometry.Record, error) {
	var rec geometry.Record
	switch g := g.(type) {
	case nil:
		rec.Kind = geometry.KindNull
		return rec, nil
	case geom.Polygon:
		rec.Kind = geometry.KindPolygon
		rec.Rings = appendRings(nil, g)
	case geom.MultiPolygon:
		rec.Kind = geometry.KindPolygon
		for _, p := range g {
			rec.Rings = appendRings(rec.Rings, p)
		}
	case geom.Point:
		rec.Kind = geometry.KindPoint
	case geom.MultiPoint:
		rec.Kind = geometry.KindMultiPoint
	case geom.LineString, geom.MultiLineString:
		rec.Kind = geometry.KindPolyLine
	default:
		return rec, fmt.Errorf("unsupported geometry type %T", g)
	}
	if b := g.Bounds(); b != nil {
		rec.BBox = rect.Rect{LLx: b.Min.X, LLy: b.Min.Y, URx: b.Max.X, URy: b.Max.Y}
	}
	return rec, nil
}

func appendRings(rings []geometry.Ring, p geom.Polygon) []geometry.Ring {
	for _, path := range p {
		ring := make(geometry.Ring, len(path))
		for i, pt := range path {
			ring[i] = vec.Vec2{X: pt.X, Y: pt.Y}
		}
		rings = append(rings, ring)
	}
	return rings
}
