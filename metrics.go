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

import "github.com/prometheus/client_golang/prometheus"

// Metrics collects counters for rasterisation runs.
// A nil *Metrics disables collection.
type Metrics struct {
	Records    prometheus.Counter
	Rasterised prometheus.Counter
	Skipped    prometheus.Counter
	PatchCells prometheus.Histogram
	Seconds    prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Records: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "landarea",
			Name:      "records_total",
			Help:      "Number of shapefile records read.",
		}),
		Rasterised: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "landarea",
			Name:      "polygons_rasterised_total",
			Help:      "Number of polygons accumulated into the grid.",
		}),
		Skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "landarea",
			Name:      "polygons_skipped_total",
			Help:      "Number of invalid or empty polygons left out.",
		}),
		PatchCells: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "landarea",
			Name:      "patch_cells",
			Help:      "Number of cells in the patch of each polygon.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}),
		Seconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "landarea",
			Name:      "run_duration_seconds",
			Help:      "Wall time of complete rasterisation runs.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
		}),
	}
	for _, c := range []prometheus.Collector{m.Records, m.Rasterised, m.Skipped, m.PatchCells, m.Seconds} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) record() {
	if m != nil {
		m.Records.Inc()
	}
}

func (m *Metrics) skipped() {
	if m != nil {
		m.Skipped.Inc()
	}
}

func (m *Metrics) rasterised(cells int) {
	if m != nil {
		m.Rasterised.Inc()
		m.PatchCells.Observe(float64(cells))
	}
}

func (m *Metrics) duration(seconds float64) {
	if m != nil {
		m.Seconds.Observe(seconds)
	}
}
