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
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// edge represents a line segment in cell coordinates.
type edge struct {
	x0, y0 float64 // start point
	x1, y1 float64 // end point
	dxdy   float64 // (x1-x0)/(y1-y0), precomputed for x-intercept calculation
}

// Rasteriser computes, for every grid cell touched by a closed polygonal
// path, the exact fraction of the cell covered by the path.
// The caller creates one instance and reuses it for multiple paths.
// Internal buffers grow as needed but never shrink.
//
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// Origin is the world position of the corner of cell (0, 0).
	Origin vec.Vec2

	// CellSize is the side length of a cell in world units.
	// Must be > 0.
	CellSize float64

	// Clip bounds output to this rectangle in cell coordinates.
	// Coordinates must be integer-aligned.
	Clip rect.Rect

	// smallPathThreshold is the maximum bounding box area (in cells) for
	// using 2D buffers (Approach A). Paths with larger bounding boxes use
	// the active edge list (Approach B).
	smallPathThreshold int

	// Internal buffers (reused across calls)
	cover     []float64 // coverage accumulation: cover change per cell; reused as output
	area      []float64 // coverage accumulation: area within cell
	edges     []edge    // edge list for current path (cell coordinates)
	activeIdx []int     // indices of active edges
	rowXMin   []int     // per-row minimum x with edge contribution
	rowXMax   []int     // per-row maximum x with edge contribution

	// Edge collection state (used by collectPathEdges/addEdge)
	edgeBBoxFirst bool    // true if no edges added yet
	edgeXMin      float64 // bounding box in cell coordinates
	edgeXMax      float64
	edgeYMin      float64
	edgeYMax      float64
}

// NewRasteriser creates a new Rasteriser with unit cells anchored at the
// origin and the given clip rectangle.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	return &Rasteriser{
		CellSize: 1,
		Clip:     clip,

		smallPathThreshold: smallPathThreshold,
	}
}

// Fill computes the covered fraction of every cell inside the clip
// rectangle.  The emit callback receives coverage row-by-row, restricted
// to the non-zero range of the row; its slice argument is valid only
// during the call.
//
// Counter-clockwise rings count positively and clockwise rings
// negatively, so an outer ring with clockwise holes yields coverage in
// [0, 1] up to rounding.  The path must consist of straight segments.
func (r *Rasteriser) Fill(p *path.Data, emit func(y, xMin int, coverage []float64)) {
	// Collect edges from path (returns bounding box clamped to clip)
	xMin, xMax, yMin, yMax, ok := r.collectPathEdges(p)
	if !ok {
		return // empty or degenerate path
	}

	width := xMax - xMin
	height := yMax - yMin

	if width*height < r.smallPathThreshold {
		r.fillSmallPath(xMin, xMax, yMin, yMax, emit)
	} else {
		r.fillLargePath(xMin, xMax, yMin, yMax, emit)
	}
}

// collectPathEdges walks the path, transforms to cell coordinates, and builds the edge list.
// Returns the bounding box of all edges in cell coordinates (clamped to clip).
func (r *Rasteriser) collectPathEdges(p *path.Data) (xMin, xMax, yMin, yMax int, ok bool) {
	r.edges = r.edges[:0]
	r.edgeBBoxFirst = true

	var current vec.Vec2 // current point (world coordinates)
	var subpath vec.Vec2 // subpath start (world coordinates)

	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if current != subpath {
				r.addEdge(current, subpath)
			}
			current = p.Coords[coordIdx]
			subpath = current
			coordIdx++

		case path.CmdLineTo:
			r.addEdge(current, p.Coords[coordIdx])
			current = p.Coords[coordIdx]
			coordIdx++

		case path.CmdClose:
			if current != subpath {
				r.addEdge(current, subpath)
			}
			current = subpath
		}
	}
	// coverage is only meaningful for closed paths
	if current != subpath {
		r.addEdge(current, subpath)
	}

	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}

	// Clamp to clip bounds and convert to integers
	clipXMin := int(r.Clip.LLx)
	clipXMax := int(r.Clip.URx)
	clipYMin := int(r.Clip.LLy)
	clipYMax := int(r.Clip.URy)

	xMin = max(int(math.Floor(r.edgeXMin)), clipXMin)
	xMax = min(int(math.Ceil(r.edgeXMax)), clipXMax)
	yMin = max(int(math.Floor(r.edgeYMin)), clipYMin)
	yMax = min(int(math.Ceil(r.edgeYMax)), clipYMax)

	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}

	return xMin, xMax, yMin, yMax, true
}

// addEdge adds an edge given in world coordinates, transforming to cell
// coordinates.  The transformation divides instead of multiplying by the
// reciprocal, so that points on cell boundaries map to integers exactly.
func (r *Rasteriser) addEdge(p0, p1 vec.Vec2) {
	dx0 := (p0.X - r.Origin.X) / r.CellSize
	dy0 := (p0.Y - r.Origin.Y) / r.CellSize
	dx1 := (p1.X - r.Origin.X) / r.CellSize
	dy1 := (p1.Y - r.Origin.Y) / r.CellSize

	// Update bounding box (horizontal edges count, they may define it)
	if r.edgeBBoxFirst {
		r.edgeXMin = min(dx0, dx1)
		r.edgeXMax = max(dx0, dx1)
		r.edgeYMin = min(dy0, dy1)
		r.edgeYMax = max(dy0, dy1)
		r.edgeBBoxFirst = false
	} else {
		r.edgeXMin = min(r.edgeXMin, min(dx0, dx1))
		r.edgeXMax = max(r.edgeXMax, max(dx0, dx1))
		r.edgeYMin = min(r.edgeYMin, min(dy0, dy1))
		r.edgeYMax = max(r.edgeYMax, max(dy0, dy1))
	}

	// Skip horizontal edges
	dy := dy1 - dy0
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}

	r.edges = append(r.edges, edge{
		x0: dx0, y0: dy0,
		x1: dx1, y1: dy1,
		dxdy: (dx1 - dx0) / dy,
	})
}

// Coverage accumulation model:
//
// For each cell, we track two values:
//   cover: signed vertical extent of edges crossing this cell column
//   area:  horizontal position weighting (how far right the crossing is)
//
// An edge crossing a cell contributes:
//   cover = sign * dy   (where sign is +1 for upward, -1 for downward in y)
//   area  = cover * (1 - xFrac)   (where xFrac is the horizontal position within the cell)
//
// Final coverage is computed by integrateRow:
//   cell_coverage = -(accumulated_cover + area[i])
//   accumulated_cover += cover[i]   (carry forward for next cell)
//
// For straight edges xFrac at the midpoint of the crossing is the exact
// average, so this yields the exact signed area of the path within each
// cell.

// accumulateEdge adds a single edge's contribution to the cover and area buffers.
// The buffers are indexed by (x - bboxXMin), where bboxXMin/bboxXMax define the buffer range.
// For edges spanning multiple cells horizontally, this function splits the edge at cell
// boundaries and computes separate contributions for each cell crossed.
func (r *Rasteriser) accumulateEdge(e *edge, y int, cover, area []float64, bboxXMin, bboxXMax int) {
	// Compute the portion of the edge within this row [y, y+1)
	yTop := float64(y)
	yBot := float64(y + 1)

	// Clamp to edge's actual y extent
	edgeYMin := min(e.y0, e.y1)
	edgeYMax := max(e.y0, e.y1)
	yTop = max(yTop, edgeYMin)
	yBot = min(yBot, edgeYMax)

	if yBot <= yTop {
		return
	}

	sign := 1.0
	if e.y1 < e.y0 {
		sign = -1
	}

	// Compute x at the y boundaries of the edge segment within this row
	xAtYTop := e.x0 + e.dxdy*(yTop-e.y0)
	xAtYBot := e.x0 + e.dxdy*(yBot-e.y0)

	// Determine cell range the edge spans (ensure left <= right for iteration)
	xLeft, xRight := xAtYTop, xAtYBot
	if xLeft > xRight {
		xLeft, xRight = xRight, xLeft
	}

	pixLeft := int(math.Floor(xLeft))
	pixRight := int(math.Floor(xRight))

	// Handle edge entirely to the left of bbox
	if pixRight < bboxXMin {
		coverVal := sign * (yBot - yTop)
		cover[0] += coverVal
		area[0] += coverVal
		return
	}

	// Handle edge entirely to the right of bbox
	if pixLeft >= bboxXMax {
		return
	}

	// For vertical edges or edges within a single cell column
	if pixLeft == pixRight {
		accumulateEdgeInColumn(e, yTop, yBot, sign, pixLeft, cover, area, bboxXMin, bboxXMax)
		return
	}

	// Edge spans multiple cells - process each cell column in x-order
	// For each cell, compute the y-extent of the edge within that column
	dydx := 1 / e.dxdy

	for pix := pixLeft; pix <= pixRight; pix++ {
		// Compute y at column boundaries
		yAtPixLeft := e.y0 + dydx*(float64(pix)-e.x0)
		yAtPixRight := e.y0 + dydx*(float64(pix+1)-e.x0)

		// Clamp to edge's y-extent within row
		segYMin := max(min(yAtPixLeft, yAtPixRight), yTop)
		segYMax := min(max(yAtPixLeft, yAtPixRight), yBot)

		segDy := segYMax - segYMin
		if segDy <= 0 {
			continue
		}

		coverVal := sign * segDy

		// Compute average x within this cell column
		yMid := (segYMin + segYMax) / 2
		xMid := e.x0 + e.dxdy*(yMid-e.y0)
		xFrac := min(max(xMid-float64(pix), 0), 1)
		areaVal := coverVal * (1 - xFrac)

		if pix < bboxXMin {
			cover[0] += coverVal
			area[0] += coverVal
		} else if pix < bboxXMax {
			idx := pix - bboxXMin
			cover[idx] += coverVal
			area[idx] += areaVal
		}
		// pix >= bboxXMax: no contribution
	}
}

// accumulateEdgeInColumn handles an edge segment that falls within a single cell column.
func accumulateEdgeInColumn(e *edge, yTop, yBot, sign float64, pix int, cover, area []float64, bboxXMin, bboxXMax int) {
	coverVal := sign * (yBot - yTop)

	if pix < bboxXMin {
		cover[0] += coverVal
		area[0] += coverVal
		return
	}
	if pix >= bboxXMax {
		return
	}

	// Compute average x within this cell
	yMid := (yTop + yBot) / 2
	xMid := e.x0 + e.dxdy*(yMid-e.y0)
	xFrac := xMid - float64(pix)
	areaVal := coverVal * (1 - xFrac)

	idx := pix - bboxXMin
	cover[idx] += coverVal
	area[idx] += areaVal
}

// integrateRow converts accumulated cover/area to signed coverage.
// The cover slice is modified in place.
func integrateRow(cover, area []float64) {
	var accum float64
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]
		cover[i] = -raw
	}
}

// trimZeros returns the non-zero portion of coverage and its starting offset.
// Returns nil, 0 if coverage is entirely zero.
func trimZeros(coverage []float64) (trimmed []float64, offset int) {
	n := len(coverage)
	lo := 0
	for lo < n && coverage[lo] == 0 {
		lo++
	}
	if lo == n {
		return nil, 0
	}
	hi := n - 1
	for hi > lo && coverage[hi] == 0 {
		hi--
	}
	return coverage[lo : hi+1], lo
}

// fillSmallPath rasterises using 2D buffers (Approach A).
// Used for small paths where width*height < smallPathThreshold.
// xMin, xMax, yMin, yMax define the path's bounding box (already clamped to clip).
func (r *Rasteriser) fillSmallPath(xMin, xMax, yMin, yMax int, emit func(y, xMin int, coverage []float64)) {
	width := xMax - xMin
	height := yMax - yMin

	// Ensure 2D buffers are large enough and zero them
	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)

	// Ensure xMin/xMax tracking buffers are large enough
	r.rowXMin = slices.Grow(r.rowXMin[:0], height)[:height]
	r.rowXMax = slices.Grow(r.rowXMax[:0], height)[:height]
	for i := range r.rowXMin {
		r.rowXMin[i] = width
		r.rowXMax[i] = -1
	}

	// Process all edges into 2D buffers
	for i := range r.edges {
		e := &r.edges[i]

		// Determine row range for this edge
		edgeYMin := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		edgeYMax := min(int(math.Ceil(max(e.y0, e.y1))), yMax)

		for y := edgeYMin; y < edgeYMax; y++ {
			row := y - yMin
			rowOffset := row * width
			r.accumulateEdge(e, y, r.cover[rowOffset:rowOffset+width], r.area[rowOffset:rowOffset+width], xMin, xMax)

			// Update x bounds for this row
			yTop := max(float64(y), min(e.y0, e.y1))
			yBot := min(float64(y+1), max(e.y0, e.y1))
			yMid := (yTop + yBot) / 2
			xMidF := e.x0 + e.dxdy*(yMid-e.y0)
			x := int(math.Floor(xMidF))
			x = max(x, xMin)
			x = min(x, xMax-1)
			xIdx := x - xMin
			if xIdx < r.rowXMin[row] {
				r.rowXMin[row] = xIdx
			}
			if xIdx > r.rowXMax[row] {
				r.rowXMax[row] = xIdx
			}
		}
	}

	// Integrate and emit each row
	for row := range height {
		if r.rowXMax[row] < 0 {
			continue // no edges touched this row
		}

		y := yMin + row
		rowOffset := row * width

		coverage := r.cover[rowOffset : rowOffset+width]
		integrateRow(coverage, r.area[rowOffset:rowOffset+width])

		// Emit only the non-zero portion
		if trimmed, offset := trimZeros(coverage); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

// fillLargePath rasterises using 1D buffers and an active edge list (Approach B).
// Used for large paths where width*height >= smallPathThreshold.
// xMin, xMax, yMin, yMax define the path's bounding box (already clamped to clip).
func (r *Rasteriser) fillLargePath(xMin, xMax, yMin, yMax int, emit func(y, xMin int, coverage []float64)) {
	width := xMax - xMin

	// Ensure 1D buffers are large enough
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	// Sort edges by y_min
	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	// Active edge list (indices into r.edges)
	r.activeIdx = r.activeIdx[:0]
	nextEdge := 0

	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		yfNext := float64(y + 1)

		// Add edges that start before the end of this row
		for nextEdge < len(r.edges) {
			e := &r.edges[nextEdge]
			if min(e.y0, e.y1) >= yfNext {
				break
			}
			r.activeIdx = append(r.activeIdx, nextEdge)
			nextEdge++
		}

		if len(r.activeIdx) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)

		contributed := false
		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]

			// Remove edges which end before this row (swap with last)
			if max(e.y0, e.y1) <= yf {
				r.activeIdx[i] = r.activeIdx[len(r.activeIdx)-1]
				r.activeIdx = r.activeIdx[:len(r.activeIdx)-1]
				continue
			}

			r.accumulateEdge(e, y, r.cover, r.area, xMin, xMax)
			if min(yfNext, max(e.y0, e.y1)) > max(yf, min(e.y0, e.y1)) {
				contributed = true
			}
			i++
		}

		if !contributed {
			continue
		}

		integrateRow(r.cover, r.area)

		// Emit only the non-zero portion
		if trimmed, offset := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

// Reset prepares the Rasteriser for a new grid frame with the given clip
// rectangle, preserving internal buffer capacity for reuse.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.Origin = vec.Vec2{}
	r.CellSize = 1
	r.Clip = clip
	if r.smallPathThreshold == 0 {
		r.smallPathThreshold = smallPathThreshold
	}

	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.edges = r.edges[:0]
	r.activeIdx = r.activeIdx[:0]
	r.rowXMin = r.rowXMin[:0]
	r.rowXMax = r.rowXMax[:0]
}

// Numerical tolerances for the rasteriser.
const (
	// horizontalEdgeThreshold is the minimum vertical extent, in cells,
	// for an edge to contribute to coverage.  Edges with |y1 - y0| below
	// this threshold are skipped as horizontal.
	horizontalEdgeThreshold = 1e-12

	// smallPathThreshold is the maximum bounding box area (in cells) for
	// using 2D buffers (Approach A). Paths with larger bounding boxes use
	// the active edge list (Approach B).
	smallPathThreshold = 65536
)
