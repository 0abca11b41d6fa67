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
	"context"
	"errors"
	"iter"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/landarea/geometry"
	"seehuhn.de/go/landarea/grid"
)

func seq(recs ...geometry.Record) iter.Seq2[geometry.Record, error] {
	return func(yield func(geometry.Record, error) bool) {
		for _, r := range recs {
			if !yield(r, nil) {
				return
			}
		}
	}
}

func polygonRecord(rings ...geometry.Ring) geometry.Record {
	return geometry.Record{Kind: geometry.KindPolygon, Rings: rings}
}

func box(x1, y1, x2, y2 float64) geometry.Ring {
	return geometry.Ring{{X: x1, Y: y1}, {X: x2, Y: y1}, {X: x2, Y: y2}, {X: x1, Y: y2}}
}

func sampleRecords() []geometry.Record {
	return []geometry.Record{
		polygonRecord(box(100, 100, 950, 420)),
		polygonRecord(geometry.Ring{{X: 30, Y: 20}, {X: 1480, Y: 60}, {X: 700, Y: 1150}}),
		polygonRecord(box(1200, 1200, 1900, 1900), box(1400, 1400, 1500, 1450)),
		polygonRecord(box(10, 1500, 60, 1550), box(300, 1600, 420, 1990)),
		polygonRecord(box(0, 0, 2000, 2000)),
	}
}

func TestRasterise(t *testing.T) {
	recs := sampleRecords()
	g, stats, err := Rasterise(context.Background(), seq(recs...), Options{NX: 20, NY: 20, PX: 100, Workers: 3})
	require.NoError(t, err)
	assert.Equal(t, Stats{Records: 5, Rasterised: 5, Skipped: 0}, stats)

	var want float64
	for _, r := range recs {
		want += r.Polygon().Area()
	}
	assert.InEpsilon(t, want, g.Sum(), 1e-6)
}

func TestRasteriseSkipsInvalid(t *testing.T) {
	recs := sampleRecords()
	bowtie := polygonRecord(geometry.Ring{{X: 0, Y: 0}, {X: 500, Y: 500}, {X: 500, Y: 0}, {X: 0, Y: 500}})
	empty := geometry.Record{Kind: geometry.KindPolygon}

	withBad := append([]geometry.Record{}, recs[:2]...)
	withBad = append(withBad, bowtie)
	withBad = append(withBad, recs[2:]...)
	withBad = append(withBad, empty)

	opt := Options{NX: 20, NY: 20, PX: 100, Workers: 4}
	clean, cleanStats, err := Rasterise(context.Background(), seq(recs...), opt)
	require.NoError(t, err)
	dirty, dirtyStats, err := Rasterise(context.Background(), seq(withBad...), opt)
	require.NoError(t, err)

	assert.Equal(t, clean.Data, dirty.Data)
	assert.Equal(t, 0, cleanStats.Skipped)
	assert.Equal(t, 2, dirtyStats.Skipped)
	assert.Equal(t, len(withBad), dirtyStats.Records)
	assert.Equal(t, cleanStats.Rasterised, dirtyStats.Rasterised)
}

func TestRasteriseWorkerCount(t *testing.T) {
	recs := sampleRecords()
	var results []*grid.Grid
	for _, workers := range []int{1, 2, 7, 0} {
		g, _, err := Rasterise(context.Background(), seq(recs...), Options{NX: 20, NY: 20, PX: 100, Workers: workers})
		require.NoError(t, err)
		results = append(results, g)
	}
	for _, g := range results[1:] {
		assert.Equal(t, results[0].Data, g.Data)
	}
}

// TestRasteriseManyRecords uses more polygons than can be in flight at
// once, with a large polygon first so that later patches queue up.
func TestRasteriseManyRecords(t *testing.T) {
	recs := []geometry.Record{
		polygonRecord(geometry.Ring{{X: 5, Y: 3}, {X: 1995, Y: 11}, {X: 1013, Y: 1997}}),
	}
	var want float64
	for i := range 500 {
		x := float64(i%40) * 50
		y := float64(i/40) * 150
		recs = append(recs, polygonRecord(box(x+1, y+2, x+41, y+77)))
		want += 40 * 75
	}
	want += 0.5 * math.Abs((1995-5)*(1997-3)-(1013-5)*(11-3))

	var results []*grid.Grid
	for _, workers := range []int{1, 3} {
		g, stats, err := Rasterise(context.Background(), seq(recs...), Options{NX: 200, NY: 200, PX: 10, Workers: workers})
		require.NoError(t, err)
		assert.Equal(t, len(recs), stats.Rasterised)
		assert.InEpsilon(t, want, g.Sum(), 1e-5)
		results = append(results, g)
	}
	assert.Equal(t, results[0].Data, results[1].Data)
}

func TestRasteriseNotPolygon(t *testing.T) {
	recs := sampleRecords()
	recs = append(recs, geometry.Record{Kind: geometry.KindPolyLine, Rings: []geometry.Ring{box(0, 0, 1, 1)}})
	recs = append(recs, sampleRecords()...)

	g, _, err := Rasterise(context.Background(), seq(recs...), Options{NX: 20, NY: 20, PX: 100})
	assert.ErrorIs(t, err, ErrNotPolygon)
	assert.Nil(t, g)
}

func TestRasteriseOutsideGrid(t *testing.T) {
	recs := sampleRecords()
	g, _, err := Rasterise(context.Background(), seq(recs...), Options{NX: 10, NY: 10, PX: 100})
	assert.ErrorIs(t, err, grid.ErrOutsideGrid)
	assert.ErrorIs(t, err, ErrRasterise)
	assert.Nil(t, g)
}

func TestRasteriseSourceError(t *testing.T) {
	errBroken := errors.New("broken file")
	recs := func(yield func(geometry.Record, error) bool) {
		if !yield(polygonRecord(box(0, 0, 10, 10)), nil) {
			return
		}
		yield(geometry.Record{}, errBroken)
	}
	_, _, err := Rasterise(context.Background(), recs, Options{NX: 1, NY: 1, PX: 100})
	assert.ErrorIs(t, err, errBroken)
}

func TestRasteriseConfig(t *testing.T) {
	cases := []struct {
		name string
		opt  Options
		also error
	}{
		{"zero width", Options{NX: 0, NY: 5, PX: 1}, nil},
		{"negative height", Options{NX: 5, NY: -1, PX: 1}, nil},
		{"zero cell size", Options{NX: 5, NY: 5, PX: 0}, grid.ErrInvalidCellSize},
		{"fractional cell size", Options{NX: 5, NY: 5, PX: 2.5}, grid.ErrInvalidCellSize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Rasterise(context.Background(), seq(sampleRecords()...), tc.opt)
			assert.ErrorIs(t, err, ErrConfig)
			if tc.also != nil {
				assert.ErrorIs(t, err, tc.also)
			}
		})
	}
}

func TestRasteriseCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Rasterise(ctx, seq(sampleRecords()...), Options{NX: 20, NY: 20, PX: 100})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRasteriseMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	recs := append(sampleRecords(), geometry.Record{Kind: geometry.KindPolygon})
	_, _, err = Rasterise(context.Background(), seq(recs...), Options{NX: 20, NY: 20, PX: 100, Metrics: m})
	require.NoError(t, err)

	assert.Equal(t, 6.0, testutil.ToFloat64(m.Records))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.Rasterised))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Skipped))

	_, err = NewMetrics(reg)
	assert.Error(t, err, "registering twice must fail")
}

func TestFindExtent(t *testing.T) {
	ext, err := FindExtent(seq(sampleRecords()...))
	require.NoError(t, err)
	assert.Equal(t, rect.Rect{LLx: 0, LLy: 0, URx: 2000, URy: 2000}, ext)

	recs := []geometry.Record{
		{Kind: geometry.KindPolygon, BBox: rect.Rect{LLx: 10, LLy: 20, URx: 30, URy: 40}},
		polygonRecord(box(5, 25, 12, 99.5)),
	}
	ext, err = FindExtent(seq(recs...))
	require.NoError(t, err)
	assert.Equal(t, rect.Rect{LLx: 5, LLy: 20, URx: 30, URy: 99.5}, ext)

	nx, ny := GridSize(ext, 10)
	assert.Equal(t, 3, nx)
	assert.Equal(t, 10, ny)

	_, err = FindExtent(seq(geometry.Record{Kind: geometry.KindPoint}))
	assert.ErrorIs(t, err, ErrNotPolygon)
}
