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

package grid

import (
	"errors"
	"fmt"

	"seehuhn.de/go/geom/rect"
)

var (
	// ErrOutsideGrid is returned when a patch does not fit into a grid.
	ErrOutsideGrid = errors.New("patch lies outside the grid")

	// ErrShapeMismatch is returned when grids of different shape are merged.
	ErrShapeMismatch = errors.New("grid shapes differ")
)

// Grid is a dense raster of per-cell values, stored row-major with row 0
// at the minimum y edge.  For land-access rasters each value is the
// covered area inside the cell, in units of px².
type Grid struct {
	NX, NY int     // number of columns and rows
	PX     float64 // cell side length in world units
	Data   []float32
}

// New allocates a zero-valued grid.
func New(nx, ny int, px float64) (*Grid, error) {
	if nx <= 0 || ny <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d", nx, ny)
	}
	if err := CheckCellSize(px); err != nil {
		return nil, err
	}
	return &Grid{
		NX:   nx,
		NY:   ny,
		PX:   px,
		Data: make([]float32, nx*ny),
	}, nil
}

// At returns the value of cell (ix, iy).
func (g *Grid) At(ix, iy int) float32 {
	return g.Data[iy*g.NX+ix]
}

// Set changes the value of cell (ix, iy).
func (g *Grid) Set(ix, iy int, v float32) {
	g.Data[iy*g.NX+ix] = v
}

// Extent returns the world rectangle covered by the grid.
func (g *Grid) Extent() rect.Rect {
	return rect.Rect{
		LLx: 0,
		LLy: 0,
		URx: float64(g.NX) * g.PX,
		URy: float64(g.NY) * g.PX,
	}
}

// Sum returns the sum of all cell values.
func (g *Grid) Sum() float64 {
	var total float64
	for _, v := range g.Data {
		total += float64(v)
	}
	return total
}

// Add accumulates the patch into the grid at the patch's anchor.
// Values of overlapping patches are summed.  If any part of the patch
// lies outside the grid, the grid is left unchanged.
func (g *Grid) Add(p *Patch) error {
	if p.NX == 0 || p.NY == 0 {
		return nil
	}
	if p.IX < 0 || p.IY < 0 || p.IX+p.NX > g.NX || p.IY+p.NY > g.NY {
		return fmt.Errorf("%w: cells [%d,%d)x[%d,%d) in %dx%d grid",
			ErrOutsideGrid, p.IX, p.IX+p.NX, p.IY, p.IY+p.NY, g.NX, g.NY)
	}
	for row := range p.NY {
		dst := g.Data[(p.IY+row)*g.NX+p.IX:]
		src := p.Area[row*p.NX : (row+1)*p.NX]
		for col, a := range src {
			dst[col] += float32(a)
		}
	}
	return nil
}

// Merge adds the values of the other grids to g, cell by cell.
// All grids must have the same shape and cell size.
func (g *Grid) Merge(others ...*Grid) error {
	for _, o := range others {
		if o.NX != g.NX || o.NY != g.NY || o.PX != g.PX {
			return fmt.Errorf("%w: %dx%d@%g vs %dx%d@%g",
				ErrShapeMismatch, g.NX, g.NY, g.PX, o.NX, o.NY, o.PX)
		}
	}
	for _, o := range others {
		for i, v := range o.Data {
			g.Data[i] += v
		}
	}
	return nil
}

// Patch is the dense local raster obtained from a single polygon.
// Area[row*NX+col] holds the area inside the grid cell (IX+col, IY+row).
type Patch struct {
	IX, IY int // anchor of the patch in the grid
	NX, NY int // patch size in cells
	Area   []float64
}

// NewPatch allocates a zero-valued patch anchored at (ix, iy).
func NewPatch(ix, iy, nx, ny int) *Patch {
	nx = max(nx, 0)
	ny = max(ny, 0)
	return &Patch{
		IX:   ix,
		IY:   iy,
		NX:   nx,
		NY:   ny,
		Area: make([]float64, nx*ny),
	}
}

// At returns the area in local cell (col, row).
func (p *Patch) At(col, row int) float64 {
	return p.Area[row*p.NX+col]
}

// Sum returns the total area of the patch.
func (p *Patch) Sum() float64 {
	var total float64
	for _, a := range p.Area {
		total += a
	}
	return total
}
