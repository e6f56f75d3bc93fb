package ingest

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/iwvelando/marketchart/internal/series"
)

// Document is a YAML or JSON series file.
type Document struct {
	Series []DocumentSeries `yaml:"series" json:"series"`
}

// DocumentSeries is one series inside a Document.
type DocumentSeries struct {
	series.Identity `yaml:",inline"`
	Points          []series.Point `yaml:"points" json:"points"`
}

// ReadDocument decodes a YAML or JSON series document.
func ReadDocument(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, errors.Wrap(err, "decode series document")
	}
	return &doc, nil
}

// Find returns the series with the given name. An empty name selects the
// first series.
func (d *Document) Find(name string) (DocumentSeries, bool) {
	for _, s := range d.Series {
		if name == "" || s.Name == name {
			return s, true
		}
	}
	return DocumentSeries{}, false
}
