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
	"fmt"
	"iter"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/landarea/geometry"
	"seehuhn.de/go/landarea/grid"
)

// Options control a rasterisation run.
type Options struct {
	NX, NY int     // grid size in cells
	PX     float64 // cell size in world units

	// Workers is the number of rasterisation goroutines.
	// If this is zero or negative, runtime.NumCPU()-1 workers are used,
	// but at least one.
	Workers int

	// Metrics, if non-nil, receives counters for the run.
	Metrics *Metrics
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return max(runtime.NumCPU()-1, 1)
}

// Stats summarises a rasterisation run.
type Stats struct {
	Records    int // records read from the source
	Rasterised int // polygons accumulated into the grid
	Skipped    int // invalid or empty polygons
}

type job struct {
	seq    int // position among the valid polygons
	record int // position in the source
	poly   geometry.Polygon
}

type result struct {
	seq   int
	patch *grid.Patch
}

// Rasterise reads all records, rasterises every valid polygon and
// accumulates the cell areas into a new nx×ny grid.
//
// Records which are not of polygon type abort the run with
// [ErrNotPolygon].  Invalid or empty polygons are skipped and counted.
// Polygons are rasterised concurrently, but patches are added to the grid
// in record order, so the result does not depend on scheduling.
// On error no grid is returned.
func Rasterise(ctx context.Context, recs iter.Seq2[geometry.Record, error], opt Options) (*grid.Grid, Stats, error) {
	start := time.Now()
	log := Logger()

	if opt.NX <= 0 || opt.NY <= 0 {
		return nil, Stats{}, fmt.Errorf("%w: grid size %dx%d", ErrConfig, opt.NX, opt.NY)
	}
	g, err := grid.New(opt.NX, opt.NY, opt.PX)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	var stats Stats
	var records, skipped int // owned by the producer

	n := opt.workers()

	eg, ctx := errgroup.WithContext(ctx)
	jobs := make(chan job)
	results := make(chan result)

	// Each polygon takes a slot from window before it is handed to a
	// worker, and returns it once its patch has been added to the grid.
	// This bounds the number of patches waiting in the reorder buffer.
	window := make(chan struct{}, inFlightPerWorker*n)

	eg.Go(func() error {
		defer close(jobs)
		seq := 0
		for rec, err := range recs {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			idx := records
			if err != nil {
				return fmt.Errorf("record %d: %w", idx, err)
			}
			records++
			opt.Metrics.record()

			if !rec.Kind.IsPolygon() {
				return fmt.Errorf("record %d: %w (type %s)", idx, ErrNotPolygon, rec.Kind)
			}
			poly := rec.Polygon()
			if err := geometry.Validate(poly); err != nil {
				skipped++
				opt.Metrics.skipped()
				log.Debug("skipping polygon", "record", idx, "reason", err)
				continue
			}

			select {
			case window <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			select {
			case jobs <- job{seq: seq, record: idx, poly: poly}:
			case <-ctx.Done():
				return ctx.Err()
			}
			seq++
		}
		return nil
	})

	var running sync.WaitGroup
	running.Add(n)
	for range n {
		eg.Go(func() error {
			defer running.Done()
			r := NewRasteriser(rect.Rect{})
			for j := range jobs {
				patch, err := r.Polygon(j.poly, opt.PX)
				if err != nil {
					return fmt.Errorf("%w: record %d: %w", ErrRasterise, j.record, err)
				}
				select {
				case results <- result{seq: j.seq, patch: patch}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		running.Wait()
		close(results)
	}()

	// The coordinator is the only goroutine writing to g.  Out-of-order
	// patches wait in pending until their predecessors have been added.
	eg.Go(func() error {
		pending := make(map[int]*grid.Patch)
		next := 0
		for res := range results {
			pending[res.seq] = res.patch
			for {
				patch, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				<-window
				if err := g.Add(patch); err != nil {
					return fmt.Errorf("%w: polygon %d: %w", ErrRasterise, next, err)
				}
				stats.Rasterised++
				opt.Metrics.rasterised(patch.NX * patch.NY)
				next++
			}
		}
		if len(pending) > 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fmt.Errorf("%w: %d patches not accumulated", ErrRasterise, len(pending))
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, Stats{}, err
	}

	stats.Records = records
	stats.Skipped = skipped
	opt.Metrics.duration(time.Since(start).Seconds())
	log.Info("rasterisation complete",
		"records", stats.Records,
		"rasterised", stats.Rasterised,
		"skipped", stats.Skipped,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return g, stats, nil
}

// FindExtent returns the bounding box of all records.
// Every record must be of polygon type.
func FindExtent(recs iter.Seq2[geometry.Record, error]) (rect.Rect, error) {
	var ext rect.Rect
	first := true
	idx := 0
	for rec, err := range recs {
		if err != nil {
			return rect.Rect{}, fmt.Errorf("record %d: %w", idx, err)
		}
		if !rec.Kind.IsPolygon() {
			return rect.Rect{}, fmt.Errorf("record %d: %w (type %s)", idx, ErrNotPolygon, rec.Kind)
		}
		idx++

		b := rec.BBox
		if b == (rect.Rect{}) {
			if len(rec.Rings) == 0 {
				continue
			}
			b = rec.Polygon().Bounds()
		}
		if first {
			ext = b
			first = false
			continue
		}
		ext.LLx = min(ext.LLx, b.LLx)
		ext.LLy = min(ext.LLy, b.LLy)
		ext.URx = max(ext.URx, b.URx)
		ext.URy = max(ext.URy, b.URy)
	}
	if first {
		return rect.Rect{}, errNoRecords
	}
	Logger().Info("dataset extent",
		"records", idx,
		"xmin", ext.LLx, "ymin", ext.LLy, "xmax", ext.URx, "ymax", ext.URy)
	return ext, nil
}

// inFlightPerWorker limits how many polygons per worker may be between
// the producer and the grid at any time.
const inFlightPerWorker = 4

var errNoRecords = errors.New("no polygon records")

// GridSize returns the number of cells needed so that a grid anchored at
// the origin with cell size px covers ext.
func GridSize(ext rect.Rect, px float64) (nx, ny int) {
	return grid.Size(ext, px)
}
