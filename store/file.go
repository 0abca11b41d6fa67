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

package store

import (
	"bufio"
	"context"
	"errors"
	"os"
	"path/filepath"

	"seehuhn.de/go/landarea/grid"
)

// File stores rasters as files in a directory.
type File struct {
	Dir string
}

// Put writes g to Dir/name.  The file is written under a temporary name
// first and renamed when complete.
func (f *File) Put(ctx context.Context, name string, g *grid.Grid) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.Dir, "."+filepath.Base(name)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	if err := encode(w, name, g); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(f.Dir, name))
}

// Get reads the raster Dir/name, which must hold exactly nx×ny values.
func (f *File) Get(ctx context.Context, name string, nx, ny int, px float64) (g *grid.Grid, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fd, err := os.Open(filepath.Join(f.Dir, name))
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, fd.Close())
	}()

	g, err = decode(bufio.NewReader(fd), name, nx, ny, px)
	if err != nil {
		return nil, err
	}
	return g, nil
}
