// Package export serializes saved records for download.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"promptgen.arpa/app/record"
)

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(records []record.Record, w io.Writer) error
	Extension() string
	ContentType() string
}

// Titler names the block a record is exported under in text exports.
type Titler func(r record.Record) string

// NewExporter creates a new exporter based on format
func NewExporter(format string, titler Titler) (Exporter, error) {
	switch format {
	case "json", "":
		return &JSONExporter{}, nil
	case "text", "txt":
		if titler == nil {
			titler = func(r record.Record) string { return r.Category }
		}
		return &TextExporter{title: titler}, nil
	case "yaml", "yml":
		return &YAMLExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: json, text, yaml)", format)
	}
}

// JSONExporter writes a pretty-printed JSON array with a 2-space indent
type JSONExporter struct{}

func (e *JSONExporter) Export(records []record.Record, w io.Writer) error {
	if records == nil {
		records = []record.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(records)
}

func (e *JSONExporter) Extension() string {
	return "json"
}

func (e *JSONExporter) ContentType() string {
	return "application/json"
}

// TextExporter writes one "<title>\n<text>\n\n---\n" block per record
type TextExporter struct {
	title Titler
}

func (e *TextExporter) Export(records []record.Record, w io.Writer) error {
	for _, r := range records {
		if _, err := fmt.Fprintf(w, "%s\n%s\n\n---\n", e.title(r), r.Text); err != nil {
			return err
		}
	}
	return nil
}

func (e *TextExporter) Extension() string {
	return "txt"
}

func (e *TextExporter) ContentType() string {
	return "text/plain; charset=utf-8"
}

// YAMLExporter writes the records as a YAML sequence
type YAMLExporter struct{}

func (e *YAMLExporter) Export(records []record.Record, w io.Writer) error {
	if records == nil {
		records = []record.Record{}
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func (e *YAMLExporter) Extension() string {
	return "yaml"
}

func (e *YAMLExporter) ContentType() string {
	return "application/yaml"
}
