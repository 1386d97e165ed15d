// Package datasync exports review schedule data to YAML files for
// backup and seeding.
package datasync

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/linguapix/reviewd/internal/review"
)

type exportRecord struct {
	ItemID       int64  `yaml:"item_id"`
	Level        int    `yaml:"level"`
	NextDueAt    string `yaml:"next_due_at"`
	CorrectCount int    `yaml:"correct_count"`
	WrongCount   int    `yaml:"wrong_count"`
	CreatedAt    string `yaml:"created_at"`
}

type exportDocument struct {
	LearnerID  int64          `yaml:"learner_id"`
	ExportedAt string         `yaml:"exported_at"`
	Records    []exportRecord `yaml:"records"`
}

// Exporter dumps a learner's review records from the database.
type Exporter struct {
	repository review.ReviewRepository
	now        func() time.Time
}

// NewExporter creates a new Exporter.
func NewExporter(repository review.ReviewRepository) *Exporter {
	return &Exporter{
		repository: repository,
		now:        time.Now,
	}
}

// WithClock replaces the exporter's time source. For tests.
func (e *Exporter) WithClock(now func() time.Time) *Exporter {
	e.now = now
	return e
}

// Export writes all of the learner's records to path as YAML and returns
// the number of exported records.
func (e *Exporter) Export(ctx context.Context, learnerID int64, path string) (int, error) {
	records, err := e.repository.FindAllByLearner(ctx, learnerID)
	if err != nil {
		return 0, fmt.Errorf("load review records: %w", err)
	}

	doc := exportDocument{
		LearnerID:  learnerID,
		ExportedAt: e.now().UTC().Format(time.RFC3339),
		Records:    make([]exportRecord, len(records)),
	}
	for i, r := range records {
		doc.Records[i] = exportRecord{
			ItemID:       r.ItemID,
			Level:        r.Level,
			NextDueAt:    r.NextDueAt.UTC().Format(time.RFC3339),
			CorrectCount: r.CorrectCount,
			WrongCount:   r.WrongCount,
			CreatedAt:    r.CreatedAt.UTC().Format(time.RFC3339),
		}
	}

	if err := writeYAML(path, doc); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return len(records), nil
}

func writeYAML(path string, data interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	defer func() { _ = enc.Close() }()
	return enc.Encode(data)
}
