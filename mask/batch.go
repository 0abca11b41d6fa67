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
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/landarea"
	"seehuhn.de/go/landarea/grid"
)

// SumWithinCircles evaluates [SumWithinCircle] for every circle, using up
// to workers goroutines.  If workers ≤ 0, runtime.NumCPU() goroutines are
// used.  The result has one entry per circle, in the same order.
func SumWithinCircles(ctx context.Context, img *grid.Grid, xmin, xmax, ymin, ymax float64, circles []Circle, ndiv, workers int) ([]float64, error) {
	if ndiv < 1 {
		return nil, ErrInvalidDivisions
	}
	if err := checkExtent(xmin, xmax, ymin, ymax); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	sums := make([]float64, len(circles))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, c := range circles {
		if gctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := SumWithinCircle(img, xmin, xmax, ymin, ymax, c, ndiv)
			if err != nil {
				return err
			}
			sums[i] = s
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	landarea.Logger().Debug("circle sums", "queries", len(circles), "ndiv", ndiv, "workers", workers)
	return sums, nil
}
