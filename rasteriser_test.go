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
	"image"
	"image/color"
	"maps"
	"math"
	"slices"
	"testing"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/landarea/grid"
	"seehuhn.de/go/landarea/testcases"
)

// approaches lists thresholds which force the two rasterisation paths:
// Approach A (2D buffers) and Approach B (active edge list).
var approaches = []struct {
	name      string
	threshold int
}{
	{"A", 1 << 30}, // very large threshold forces Approach A
	{"B", 0},       // zero threshold forces Approach B
}

// fillCells fills p into a dense w×h buffer of coverage values.
func fillCells(r *Rasteriser, p *path.Data, w, h int) []float64 {
	buf := make([]float64, w*h)
	r.Fill(p, func(y, xMin int, coverage []float64) {
		copy(buf[y*w+xMin:], coverage)
	})
	return buf
}

// TestTriangleCoverage verifies exact coverage values for a simple triangle.
// The triangle (0,0)→(10,0)→(10,1)→close has a diagonal edge y = x/10.
// Each cell X should have coverage (2X+1)/20: 0.05, 0.15, ..., 0.95.
func TestTriangleCoverage(t *testing.T) {
	trianglePath := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	for _, approach := range approaches {
		t.Run(approach.name, func(t *testing.T) {
			r := NewRasteriser(rect.Rect{URx: 10, URy: 1})
			r.smallPathThreshold = approach.threshold

			coverage := fillCells(r, trianglePath, 10, 1)

			const epsilon = 1e-12
			for x := range 10 {
				expected := float64(2*x+1) / 20.0
				if math.Abs(coverage[x]-expected) > epsilon {
					t.Errorf("cell %d: expected coverage %.4f, got %.4f", x, expected, coverage[x])
				}
			}
		})
	}
}

// TestOrientation checks that clockwise rings give negative coverage.
func TestOrientation(t *testing.T) {
	square := (&path.Data{}).
		MoveTo(vec.Vec2{X: 1, Y: 1}).
		LineTo(vec.Vec2{X: 1, Y: 2}).
		LineTo(vec.Vec2{X: 2, Y: 2}).
		LineTo(vec.Vec2{X: 2, Y: 1}).
		Close()

	r := NewRasteriser(rect.Rect{URx: 3, URy: 3})
	coverage := fillCells(r, square, 3, 3)
	for i, c := range coverage {
		want := 0.0
		if i == 1*3+1 {
			want = -1
		}
		if c != want {
			t.Errorf("cell %d: got %g, want %g", i, c, want)
		}
	}
}

// TestCellFrame checks the mapping from world to cell coordinates.
func TestCellFrame(t *testing.T) {
	// world square [250,350]×[120,180] with 50m cells anchored at (200,100)
	square := (&path.Data{}).
		MoveTo(vec.Vec2{X: 250, Y: 120}).
		LineTo(vec.Vec2{X: 350, Y: 120}).
		LineTo(vec.Vec2{X: 350, Y: 180}).
		LineTo(vec.Vec2{X: 250, Y: 180}).
		Close()

	r := NewRasteriser(rect.Rect{URx: 4, URy: 2})
	r.Origin = vec.Vec2{X: 200, Y: 100}
	r.CellSize = 50
	coverage := fillCells(r, square, 4, 2)

	expected := []float64{
		0, 0.6, 0.6, 0,
		0, 0.6, 0.6, 0,
	}
	for i := range expected {
		if math.Abs(coverage[i]-expected[i]) > 1e-12 {
			t.Errorf("cell %d: got %g, want %g", i, coverage[i], expected[i])
		}
	}
}

// TestApproachesAgree compares the two rasterisation strategies on all
// test cases.
func TestApproachesAgree(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				var results [][]float64
				var patch *grid.Patch
				for _, approach := range approaches {
					r := NewRasteriser(rect.Rect{})
					r.smallPathThreshold = approach.threshold
					p, err := r.Polygon(tc.Polygon, tc.PX)
					if err != nil {
						t.Fatal(err)
					}
					results = append(results, p.Area)
					patch = p
				}
				tol := 1e-9 * tc.PX * tc.PX
				for i := range results[0] {
					if math.Abs(results[0][i]-results[1][i]) > tol {
						t.Fatalf("cell (%d,%d): A=%g B=%g",
							i%patch.NX, i/patch.NX, results[0][i], results[1][i])
					}
				}
			})
		}
	}
}

// TestAgainstVector compares row totals with golang.org/x/image/vector.
// The reference distributes the area of sloped edges between neighbouring
// cells only approximately and quantises every cell to 8 bits, so cells
// are compared in aggregate; per-cell exactness is checked by
// TestAgainstClipping.
func TestAgainstVector(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				patch, err := RasterisePolygon(tc.Polygon, tc.PX)
				if err != nil {
					t.Fatal(err)
				}
				w, h := patch.NX, patch.NY
				if w*h > 1<<22 {
					t.Skip("patch too large for reference")
				}

				ref := vector.NewRasterizer(w, h)
				ox := float64(patch.IX) * tc.PX
				oy := float64(patch.IY) * tc.PX
				for _, s := range tc.Polygon.Parts() {
					addPathToVector(ref, s.Path(), ox, oy, tc.PX)
				}
				dst := image.NewAlpha(image.Rect(0, 0, w, h))
				ref.Draw(dst, dst.Bounds(), image.NewUniform(color.Alpha{A: 255}), image.Point{})

				cellArea := tc.PX * tc.PX
				var gotTotal, wantTotal float64
				bad := 0
				for y := range h {
					var got, want float64
					touched := 0
					for x := range w {
						g := patch.At(x, y) / cellArea
						v := float64(dst.Pix[y*dst.Stride+x]) / 255
						if g != 0 || v != 0 {
							touched++
						}
						got += g
						want += v
					}
					gotTotal += got
					wantTotal += want
					tol := float64(touched)*1.5/255 + 1e-3
					if math.Abs(got-want) > tol {
						if bad < 5 {
							t.Errorf("row %d: got %.4f, reference %.4f", y, got, want)
						}
						bad++
					}
				}
				if bad > 0 {
					t.Errorf("%d of %d rows differ", bad, h)
				}
				if math.Abs(gotTotal-wantTotal) > 1e-2*max(wantTotal, 1) {
					t.Errorf("total: got %.4f, reference %.4f", gotTotal, wantTotal)
				}
			})
		}
	}
}

// addPathToVector adds a straight-edged path, mapped to cell coordinates,
// to a vector.Rasterizer.
func addPathToVector(r *vector.Rasterizer, p *path.Data, ox, oy, px float64) {
	local := func(v vec.Vec2) (float32, float32) {
		return float32((v.X - ox) / px), float32((v.Y - oy) / px)
	}
	i := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			r.MoveTo(local(p.Coords[i]))
			i++
		case path.CmdLineTo:
			r.LineTo(local(p.Coords[i]))
			i++
		case path.CmdClose:
			r.ClosePath()
		}
	}
}

// TestReset checks that a reused Rasteriser gives the same results as a
// fresh one.
func TestReset(t *testing.T) {
	cases := testcases.All["fill"]
	r := NewRasteriser(rect.Rect{})
	for range 2 {
		for _, tc := range cases {
			got, err := r.Polygon(tc.Polygon, tc.PX)
			if err != nil {
				t.Fatal(err)
			}
			want, err := RasterisePolygon(tc.Polygon, tc.PX)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got.Area, want.Area) {
				t.Errorf("%s: reused rasteriser gives different result", tc.Name)
			}
		}
	}
}

// BenchmarkRasteriseAll measures steady-state performance by reusing a single
// Rasteriser across all test cases. This tests buffer reuse with varying patch sizes.
func BenchmarkRasteriseAll(b *testing.B) {
	var cases []testcases.TestCase
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		cases = append(cases, testcases.All[category]...)
	}

	r := NewRasteriser(rect.Rect{})

	b.ResetTimer()
	for b.Loop() {
		for _, tc := range cases {
			if _, err := r.Polygon(tc.Polygon, tc.PX); err != nil {
				b.Fatal(err)
			}
		}
	}
}
