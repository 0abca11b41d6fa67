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

// Package store persists rasters as flat float32 arrays, either as
// local files or as objects in an S3-compatible bucket.
//
// Names ending in ".zst" are stored zstd-compressed; all other names hold
// the raw little-endian float32 values without any header.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"

	"seehuhn.de/go/landarea"
	"seehuhn.de/go/landarea/grid"
)

// Store saves and loads rasters by name.
type Store interface {
	Put(ctx context.Context, name string, g *grid.Grid) error
	Get(ctx context.Context, name string, nx, ny int, px float64) (*grid.Grid, error)
}

// ErrNoInputs is returned by MergeInto when no raster names are given.
var ErrNoInputs = errors.New("no rasters to merge")

func compressed(name string) bool {
	return strings.HasSuffix(name, ".zst")
}

// encode writes g to w in the format implied by name.
func encode(w io.Writer, name string, g *grid.Grid) error {
	if !compressed(name) {
		_, err := g.WriteTo(w)
		return err
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return err
	}
	if _, err := g.WriteTo(enc); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// decode reads a raster in the format implied by name.
func decode(r io.Reader, name string, nx, ny int, px float64) (*grid.Grid, error) {
	if !compressed(name) {
		return grid.Read(r, nx, ny, px)
	}

	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return grid.Read(dec, nx, ny, px)
}

// MergeInto loads the named rasters, adds them cell by cell and stores
// the result under out.  All rasters must have size nx×ny.
func MergeInto(ctx context.Context, s Store, out string, nx, ny int, px float64, names ...string) (*grid.Grid, error) {
	if len(names) == 0 {
		return nil, ErrNoInputs
	}

	merged, err := grid.New(nx, ny, px)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		g, err := s.Get(ctx, name, nx, ny, px)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", name, err)
		}
		if err := merged.Merge(g); err != nil {
			return nil, fmt.Errorf("merging %q: %w", name, err)
		}
	}
	if err := s.Put(ctx, out, merged); err != nil {
		return nil, fmt.Errorf("storing %q: %w", out, err)
	}

	landarea.Logger().Info("merged rasters", "inputs", len(names), "output", out, "total", merged.Sum())
	return merged, nil
}
