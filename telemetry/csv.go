package telemetry

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// GenerationRecord is one row of the generation CSV log.
type GenerationRecord struct {
	Generation   int     `csv:"generation"`
	BestFitness  float64 `csv:"best_fitness"`
	MeanFitness  float64 `csv:"mean_fitness"`
	MutationRate float64 `csv:"mutation_rate"`
}

// CSVExporter appends one row per generation to a CSV file, writing
// the header only on the first call.
type CSVExporter struct {
	file          *os.File
	headerWritten bool
}

// NewCSVExporter creates (or truncates) path and returns an exporter
// for it. Returns nil, nil if path is empty (export disabled).
func NewCSVExporter(path string) (*CSVExporter, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating generation log: %w", err)
	}
	return &CSVExporter{file: f}, nil
}

// WriteGeneration appends one row.
func (e *CSVExporter) WriteGeneration(r GenerationRecord) error {
	if e == nil {
		return nil
	}
	records := []GenerationRecord{r}
	if !e.headerWritten {
		if err := gocsv.Marshal(records, e.file); err != nil {
			return fmt.Errorf("writing generation log: %w", err)
		}
		e.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, e.file); err != nil {
		return fmt.Errorf("writing generation log: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (e *CSVExporter) Close() error {
	if e == nil || e.file == nil {
		return nil
	}
	return e.file.Close()
}
