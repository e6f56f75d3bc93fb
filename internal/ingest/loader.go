// Package ingest loads raw series from inline points, xlsx index sheets and
// YAML/JSON documents.
package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iwvelando/marketchart/internal/series"
)

// Source describes where one series comes from. File takes precedence over
// Points. Column selects the sheet column or document series and defaults to
// the series name.
type Source struct {
	Identity series.Identity
	Points   []series.Point
	File     string
	Sheet    string
	Column   string
}

// Loader reads sources into series.
type Loader struct {
	logger *zap.Logger
	open   func(string) (io.ReadCloser, error)
}

// NewLoader returns a Loader reading files from disk.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		logger: logger,
		open: func(path string) (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

// LoadAll loads every source concurrently and returns the series in source
// order plus one warning per source that dropped points or ended up empty.
// An empty source loads as an empty series; only an unreadable file fails,
// and the first failure cancels the rest.
func (l *Loader) LoadAll(ctx context.Context, sources []Source) ([]series.Series, []string, error) {
	out := make([]series.Series, len(sources))
	dropped := make([]int, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	for i := range sources {
		i := i
		g.Go(func() error {
			s, n, err := l.Load(ctx, sources[i])
			if err != nil {
				return err
			}
			out[i], dropped[i] = s, n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var warnings []string
	for i, n := range dropped {
		if n > 0 {
			warnings = append(warnings, fmt.Sprintf("series %q: dropped %d unusable points", sources[i].Identity.Name, n))
		}
		if out[i].Len() == 0 {
			warnings = append(warnings, fmt.Sprintf("series %q: no data", sources[i].Identity.Name))
		}
	}
	return out, warnings, nil
}

// Load reads one source. The returned count is the number of raw points or
// cells that could not be used.
func (l *Loader) Load(ctx context.Context, src Source) (series.Series, int, error) {
	if err := ctx.Err(); err != nil {
		return series.Series{}, 0, err
	}

	points, bad, err := l.points(src)
	if err != nil {
		return series.Series{}, 0, &SourceError{Source: src.Identity.Name, File: src.File, Err: err}
	}
	s, dropped := series.NewSeries(src.Identity, points)

	l.logger.Debug("loaded series",
		zap.String("op", "ingest.Load"),
		zap.String("series", src.Identity.Name),
		zap.String("file", src.File),
		zap.Int("samples", s.Len()),
		zap.Int("dropped", dropped+bad),
	)
	return s, dropped + bad, nil
}

func (l *Loader) points(src Source) ([]series.Point, int, error) {
	if src.File == "" {
		return src.Points, 0, nil
	}

	f, err := l.open(src.File)
	if err != nil {
		return nil, 0, errors.Wrap(err, "open series file")
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			l.logger.Warn("failed to close series file",
				zap.String("op", "ingest.points"),
				zap.String("file", src.File),
				zap.Error(closeErr),
			)
		}
	}()

	column := src.Column
	if column == "" {
		column = src.Identity.Name
	}
	return readPoints(f, src.File, src.Sheet, column)
}

func readPoints(r io.Reader, name, sheet, column string) ([]series.Point, int, error) {
	switch formatOf(name) {
	case formatWorkbook:
		t, err := ReadWorkbook(r, sheet)
		if err != nil {
			return nil, 0, err
		}
		return t.Points(column)
	case formatDocument:
		doc, err := ReadDocument(r)
		if err != nil {
			return nil, 0, err
		}
		s, ok := doc.Find(column)
		if !ok {
			return nil, 0, errors.Wrapf(ErrColumnNotFound, "series %q", column)
		}
		return s.Points, 0, nil
	}
	return nil, 0, errors.Wrapf(ErrUnsupportedFormat, "%q", filepath.Ext(name))
}

// ReadUpload turns an uploaded file into inline sources: one per sheet column
// for workbooks, one per series for documents.
func ReadUpload(name string, data []byte) ([]Source, []string, error) {
	switch formatOf(name) {
	case formatWorkbook:
		t, err := ReadWorkbook(bytes.NewReader(data), "")
		if err != nil {
			return nil, nil, err
		}
		sources := make([]Source, 0, len(t.Headers))
		var warnings []string
		for _, h := range t.Headers {
			points, bad, err := t.Points(h)
			if err != nil {
				return nil, nil, err
			}
			if bad > 0 {
				warnings = append(warnings, fmt.Sprintf("column %q: skipped %d non-numeric cells", h, bad))
			}
			sources = append(sources, Source{Identity: series.Identity{Name: h}, Points: points})
		}
		return sources, warnings, nil
	case formatDocument:
		doc, err := ReadDocument(bytes.NewReader(data))
		if err != nil {
			return nil, nil, err
		}
		sources := make([]Source, 0, len(doc.Series))
		for _, s := range doc.Series {
			sources = append(sources, Source{Identity: s.Identity, Points: s.Points})
		}
		return sources, nil, nil
	}
	return nil, nil, errors.Wrapf(ErrUnsupportedFormat, "%q", filepath.Ext(name))
}

type fileFormat int

const (
	formatUnknown fileFormat = iota
	formatWorkbook
	formatDocument
)

func formatOf(name string) fileFormat {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return formatWorkbook
	case ".yaml", ".yml", ".json":
		return formatDocument
	}
	return formatUnknown
}
