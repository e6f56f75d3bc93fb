// Package adapters provides adapter implementations between different package interfaces.
package adapters

import (
	"github.com/iwvelando/marketchart/internal/config"
	"github.com/iwvelando/marketchart/internal/ingest"
	"github.com/iwvelando/marketchart/internal/series"
)

// ConfigSeriesAdapter wraps config.SeriesConfig to produce an ingest.Source
type ConfigSeriesAdapter struct {
	Series config.SeriesConfig
}

// GetName returns the series name
func (w ConfigSeriesAdapter) GetName() string {
	return w.Series.Name
}

// Source returns the ingest source for the series. The column defaults to
// the series name when a file is set.
func (w ConfigSeriesAdapter) Source() ingest.Source {
	src := ingest.Source{
		Identity: w.Series.Identity(),
		File:     w.Series.File,
		Sheet:    w.Series.Sheet,
		Column:   w.Series.Column,
	}
	if src.File == "" {
		src.Points = w.Series.ToPoints()
	} else if src.Column == "" {
		src.Column = w.Series.Name
	}
	return src
}

// SeriesToSources converts config.SeriesConfig slices to ingest.Source slices
func SeriesToSources(configured []config.SeriesConfig) []ingest.Source {
	if configured == nil {
		return nil
	}

	sources := make([]ingest.Source, 0, len(configured))
	for _, s := range configured {
		sources = append(sources, ConfigSeriesAdapter{Series: s}.Source())
	}
	return sources
}

// PointsToSource wraps inline request points as an ingest.Source
func PointsToSource(id series.Identity, points []series.Point) ingest.Source {
	return ingest.Source{Identity: id, Points: points}
}
