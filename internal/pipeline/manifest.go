// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-harvester/internal/store"
)

// Manifest is the on-disk record of one query's run: what was processed and
// how each paper ended up. It can be inspected without opening the ledger.
type Manifest struct {
	Query     string          `yaml:"query"`
	Timestamp time.Time       `yaml:"timestamp"`
	Papers    []ManifestEntry `yaml:"papers"`
}

// ManifestEntry is one paper's terminal state in serializable form.
type ManifestEntry struct {
	PaperID  string `yaml:"paper_id"`
	Title    string `yaml:"title"`
	Status   string `yaml:"status"`
	Attempts int    `yaml:"attempts,omitempty"`
	PDFPath  string `yaml:"pdf_path,omitempty"`
	MDPath   string `yaml:"md_path,omitempty"`
	Error    string `yaml:"error,omitempty"`
}

// WriteManifest saves the outcomes for one query to a YAML file at path.
func WriteManifest(path, query string, outcomes []Outcome) error {
	m := Manifest{
		Query:     query,
		Timestamp: time.Now().UTC(),
	}
	for _, o := range outcomes {
		m.Papers = append(m.Papers, ManifestEntry{
			PaperID:  o.Paper.ID,
			Title:    o.Paper.Title,
			Status:   string(o.Status),
			Attempts: o.Attempts,
			PDFPath:  o.PDFPath,
			MDPath:   o.MDPath,
			Error:    o.Err,
		})
	}

	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	return store.WriteAtomic(path, data)
}
