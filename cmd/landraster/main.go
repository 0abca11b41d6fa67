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

// Command landraster converts land-access shapefiles into rasters of
// covered area per cell and merges them into a single raster.
//
// Usage:
//
//	landraster -config landarea.yaml [-env .env] [-v]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"

	"seehuhn.de/go/landarea"
	"seehuhn.de/go/landarea/internal/config"
	"seehuhn.de/go/landarea/shapefile"
	"seehuhn.de/go/landarea/store"
)

func main() {
	var (
		configFile = flag.String("config", "landarea.yaml", "configuration file")
		envFile    = flag.String("env", ".env", "file with environment overrides")
		verbose    = flag.Bool("v", false, "log every skipped polygon")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	landarea.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *configFile, *envFile); err != nil {
		logger.Error("landraster failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configFile, envFile string) error {
	cfg, err := config.Load(configFile, envFile)
	if err != nil {
		return err
	}
	log := landarea.Logger()

	reg := prometheus.NewRegistry()
	metrics, err := landarea.NewMetrics(reg)
	if err != nil {
		return err
	}

	s, err := cfg.Store.Open(ctx)
	if err != nil {
		return err
	}

	px := float64(cfg.Grid.PX)
	log.Info("grid",
		"px", cfg.Grid.PX, "nx", cfg.Grid.NX, "ny", cfg.Grid.NY,
		"raster_mib", float64(cfg.Grid.NX)*float64(cfg.Grid.NY)*4/(1024*1024))

	var outputs []string
	for _, ds := range cfg.Datasets {
		if err := rasteriseDataset(ctx, s, ds, cfg, metrics); err != nil {
			return fmt.Errorf("dataset %q: %w", ds.Name, err)
		}
		outputs = append(outputs, ds.Output)
	}

	if len(outputs) > 0 {
		if _, err := store.MergeInto(ctx, s, cfg.Merged, cfg.Grid.NX, cfg.Grid.NY, px, outputs...); err != nil {
			return err
		}
	}

	if cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, reg); err != nil {
			return err
		}
	}
	return nil
}

func rasteriseDataset(ctx context.Context, s store.Store, ds config.DatasetConfig, cfg *config.Config, metrics *landarea.Metrics) error {
	log := landarea.Logger().With("dataset", ds.Name)
	px := float64(cfg.Grid.PX)

	// The record iterator can only be used once, so the file is read
	// twice: once for the extent and once for rasterisation.
	r, err := shapefile.Open(ds.Shapefile)
	if err != nil {
		return err
	}
	ext, err := landarea.FindExtent(r.Records())
	r.Close()
	if err != nil {
		return err
	}
	nx, ny := landarea.GridSize(ext, px)
	log.Info("extent", "nx_required", nx, "ny_required", ny)
	if nx > cfg.Grid.NX || ny > cfg.Grid.NY {
		return fmt.Errorf("%w: dataset needs a %dx%d grid, configured %dx%d",
			landarea.ErrConfig, nx, ny, cfg.Grid.NX, cfg.Grid.NY)
	}

	r, err = shapefile.Open(ds.Shapefile)
	if err != nil {
		return err
	}
	defer r.Close()

	g, stats, err := landarea.Rasterise(ctx, r.Records(), landarea.Options{
		NX:      cfg.Grid.NX,
		NY:      cfg.Grid.NY,
		PX:      px,
		Workers: cfg.Workers,
		Metrics: metrics,
	})
	if err != nil {
		return err
	}
	if stats.Skipped > 0 {
		log.Info("skipped invalid polygons", "count", stats.Skipped)
	}

	if err := s.Put(ctx, ds.Output, g); err != nil {
		return err
	}
	log.Info("stored", "output", ds.Output, "area_m2", g.Sum())
	return nil
}
