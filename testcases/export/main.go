// Command export writes the polygon test cases, together with the cell
// areas computed by the rasteriser, to JSON for an external cross-check.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/landarea"
	"seehuhn.de/go/landarea/geometry"
	"seehuhn.de/go/landarea/testcases"
)

func main() {
	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			jtc, err := toJSON(category, tc)
			if err != nil {
				panic(err)
			}
			out.TestCases = append(out.TestCases, jtc)
		}
	}

	if err := os.MkdirAll("testdata", 0o755); err != nil {
		panic(err)
	}
	f, err := os.Create("testdata/testcases.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonTestCase struct {
	Name  string     `json:"name"`
	PX    float64    `json:"px"`
	Parts []jsonPart `json:"parts"`
	Area  float64    `json:"area"`
	Cells []jsonCell `json:"cells"`
}

type jsonPart struct {
	Outer [][]float64   `json:"outer"`
	Holes [][][]float64 `json:"holes,omitempty"`
}

type jsonCell struct {
	IX   int     `json:"ix"`
	IY   int     `json:"iy"`
	Area float64 `json:"area"`
}

func toJSON(category string, tc testcases.TestCase) (jsonTestCase, error) {
	jtc := jsonTestCase{
		Name: category + "_" + tc.Name,
		PX:   tc.PX,
		Area: tc.Polygon.Area(),
	}
	for _, s := range tc.Polygon.Parts() {
		part := jsonPart{Outer: ringToJSON(s.Outer)}
		for _, h := range s.Holes {
			part.Holes = append(part.Holes, ringToJSON(h))
		}
		jtc.Parts = append(jtc.Parts, part)
	}

	patch, err := landarea.RasterisePolygon(tc.Polygon, tc.PX)
	if err != nil {
		return jsonTestCase{}, err
	}
	for row := range patch.NY {
		for col := range patch.NX {
			if a := patch.At(col, row); a != 0 {
				jtc.Cells = append(jtc.Cells, jsonCell{IX: patch.IX + col, IY: patch.IY + row, Area: a})
			}
		}
	}
	return jtc, nil
}

func ringToJSON(r geometry.Ring) [][]float64 {
	pts := make([][]float64, len(r))
	for i, p := range r {
		pts[i] = []float64{p.X, p.Y}
	}
	return pts
}
