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

// Package config loads the settings of the landraster command from a
// YAML file, with overrides from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("invalid configuration")

// Config is the root of the configuration.
type Config struct {
	Grid        GridConfig      `yaml:"grid"`
	NDiv        int             `yaml:"ndiv"`
	Workers     int             `yaml:"workers"`
	Datasets    []DatasetConfig `yaml:"datasets"`
	Merged      string          `yaml:"merged"`
	Store       StoreConfig     `yaml:"store"`
	MetricsFile string          `yaml:"metrics_file"`
}

// GridConfig describes the global grid.  The cell size is in metres and
// must be an integer.
type GridConfig struct {
	PX int `yaml:"px"`
	NX int `yaml:"nx"`
	NY int `yaml:"ny"`
}

// DatasetConfig names one access category.
type DatasetConfig struct {
	Name      string `yaml:"name"`
	Shapefile string `yaml:"shapefile"`
	Output    string `yaml:"output"`
}

// StoreConfig selects where rasters are kept.
type StoreConfig struct {
	Kind      string `yaml:"kind"` // "file" or "minio"
	Dir       string `yaml:"dir"`
	Endpoint  string `yaml:"endpoint"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Secure    bool   `yaml:"secure"`
}

// Default returns the settings used for missing values.
func Default() *Config {
	return &Config{
		Grid:   GridConfig{PX: 128, NX: 5200, NY: 5200},
		NDiv:   16,
		Merged: "merged.bin",
		Store:  StoreConfig{Kind: "file", Dir: "."},
	}
}

// Load reads the YAML file at path on top of the defaults, then applies
// environment overrides.  Variables may also come from the given .env
// files; missing .env files are ignored.  An empty path skips the YAML
// step.  The result is validated.
func Load(path string, envFiles ...string) (*Config, error) {
	for _, name := range envFiles {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", name, err)
		}
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"LANDAREA_PX", &c.Grid.PX},
		{"LANDAREA_NX", &c.Grid.NX},
		{"LANDAREA_NY", &c.Grid.NY},
		{"LANDAREA_NDIV", &c.NDiv},
		{"LANDAREA_WORKERS", &c.Workers},
	}
	for _, v := range ints {
		s := os.Getenv(v.name)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalid, v.name, s)
		}
		*v.dst = n
	}

	strs := []struct {
		name string
		dst  *string
	}{
		{"LANDAREA_STORE_DIR", &c.Store.Dir},
		{"LANDAREA_MINIO_ENDPOINT", &c.Store.Endpoint},
		{"LANDAREA_MINIO_BUCKET", &c.Store.Bucket},
		{"LANDAREA_MINIO_ACCESS_KEY", &c.Store.AccessKey},
		{"LANDAREA_MINIO_SECRET_KEY", &c.Store.SecretKey},
	}
	for _, v := range strs {
		if s := os.Getenv(v.name); s != "" {
			*v.dst = s
		}
	}

	if s := os.Getenv("LANDAREA_MINIO_SECURE"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("%w: LANDAREA_MINIO_SECURE=%q", ErrInvalid, s)
		}
		c.Store.Secure = b
	}
	return nil
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	if c.Grid.PX <= 0 {
		return fmt.Errorf("%w: grid.px must be positive, got %d", ErrInvalid, c.Grid.PX)
	}
	if c.Grid.NX <= 0 || c.Grid.NY <= 0 {
		return fmt.Errorf("%w: grid size %dx%d", ErrInvalid, c.Grid.NX, c.Grid.NY)
	}
	if c.NDiv < 1 {
		return fmt.Errorf("%w: ndiv must be at least 1, got %d", ErrInvalid, c.NDiv)
	}

	seen := make(map[string]bool)
	outputs := make(map[string]bool)
	for i, d := range c.Datasets {
		if d.Name == "" || d.Shapefile == "" || d.Output == "" {
			return fmt.Errorf("%w: dataset %d needs name, shapefile and output", ErrInvalid, i)
		}
		if seen[d.Name] {
			return fmt.Errorf("%w: duplicate dataset name %q", ErrInvalid, d.Name)
		}
		seen[d.Name] = true
		if outputs[d.Output] || d.Output == c.Merged {
			return fmt.Errorf("%w: output %q used twice", ErrInvalid, d.Output)
		}
		outputs[d.Output] = true
	}

	switch c.Store.Kind {
	case "file":
		if c.Store.Dir == "" {
			return fmt.Errorf("%w: store.dir is empty", ErrInvalid)
		}
	case "minio":
		if c.Store.Endpoint == "" || c.Store.Bucket == "" {
			return fmt.Errorf("%w: minio store needs endpoint and bucket", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown store kind %q", ErrInvalid, c.Store.Kind)
	}
	return nil
}
