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

// Command sumcircle reports how much land of a stored raster lies within
// given distances of a point.
//
// Usage:
//
//	sumcircle -x 451200 -y 1203400 -r 5000,10000,25000
//	sumcircle -x 451200 -y 1203400 -rmax 50000 -nr 5
//
// One JSON object is written per radius.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"seehuhn.de/go/landarea"
	"seehuhn.de/go/landarea/internal/config"
	"seehuhn.de/go/landarea/mask"
)

type query struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	R        float64 `json:"r"`
	Area     float64 `json:"area_m2"`
	Fraction float64 `json:"fraction"`
}

func main() {
	var (
		configFile = flag.String("config", "", "configuration file (optional)")
		envFile    = flag.String("env", ".env", "file with environment overrides")
		raster     = flag.String("raster", "", "raster name (default: the merged raster)")
		x          = flag.Float64("x", 0, "x coordinate of the centre [m]")
		y          = flag.Float64("y", 0, "y coordinate of the centre [m]")
		radii      = flag.String("r", "", "comma-separated radii [m]")
		rmax       = flag.Float64("rmax", 50e3, "largest radius when -r is not given [m]")
		nr         = flag.Int("nr", 5, "number of radii when -r is not given")
		ndiv       = flag.Int("ndiv", 0, "sub-divisions per cell side (default from config)")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	landarea.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rs, err := parseRadii(*radii, *rmax, *nr)
	if err == nil {
		err = run(ctx, *configFile, *envFile, *raster, *x, *y, rs, *ndiv)
	}
	if err != nil {
		logger.Error("sumcircle failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configFile, envFile, raster string, x, y float64, radii []float64, ndiv int) error {
	cfg, err := config.Load(configFile, envFile)
	if err != nil {
		return err
	}
	if raster == "" {
		raster = cfg.Merged
	}
	if ndiv == 0 {
		ndiv = cfg.NDiv
	}

	s, err := cfg.Store.Open(ctx)
	if err != nil {
		return err
	}
	g, err := s.Get(ctx, raster, cfg.Grid.NX, cfg.Grid.NY, float64(cfg.Grid.PX))
	if err != nil {
		return err
	}

	circles := make([]mask.Circle, len(radii))
	for i, r := range radii {
		circles[i] = mask.Circle{CX: x, CY: y, R: r}
	}
	ext := g.Extent()
	sums, err := mask.SumWithinCircles(ctx, g, ext.LLx, ext.URx, ext.LLy, ext.URy, circles, ndiv, cfg.Workers)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	for i, c := range circles {
		q := query{X: c.CX, Y: c.CY, R: c.R, Area: sums[i]}
		if c.R > 0 {
			q.Fraction = sums[i] / (math.Pi * c.R * c.R)
		}
		if err := enc.Encode(q); err != nil {
			return err
		}
	}
	return nil
}

var errNoRadii = errors.New("no radii given")

// parseRadii returns the radii from a comma-separated list, or n evenly
// spaced radii up to rmax if the list is empty.
func parseRadii(list string, rmax float64, n int) ([]float64, error) {
	if list == "" {
		rs := mask.Radii(rmax, n)
		if len(rs) == 0 {
			return nil, errNoRadii
		}
		return rs, nil
	}

	var rs []float64
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		r, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("radius %q: %w", field, err)
		}
		rs = append(rs, r)
	}
	if len(rs) == 0 {
		return nil, errNoRadii
	}
	return rs, nil
}
