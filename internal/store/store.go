// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store lays out downloaded artifacts on disk. Paths are derived
// deterministically from the query string and paper metadata so repeated
// runs resolve to the same files and can skip work already done.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pdiddy/paper-harvester/pkg/types"
)

const (
	pdfDir      = "pdfs"
	mdDir       = "mds"
	manifestDir = "manifests"
)

// Paths holds the artifact target paths for one paper.
type Paths struct {
	PDF string
	MD  string
}

// Store maps queries and papers to artifact paths under a root directory.
// It remembers which paper claimed each filename so two papers whose titles
// sanitize to the same string get distinct paths.
type Store struct {
	root    string
	claimed map[string]string // folder/name → paper ID
}

// New creates a Store rooted at root. An empty root means the current directory.
func New(root string) *Store {
	if root == "" {
		root = "."
	}
	return &Store{root: root, claimed: make(map[string]string)}
}

// FolderName derives a filesystem-safe folder from a query string: lowercase,
// with runs of non-alphanumeric characters collapsed to a single underscore.
// It is a pure function; identical queries always map to identical folders.
func FolderName(query string) string {
	var b strings.Builder
	sep := true
	for _, r := range strings.ToLower(query) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			sep = false
			continue
		}
		if !sep {
			b.WriteByte('_')
		}
		sep = true
	}
	return strings.TrimSuffix(b.String(), "_")
}

// Resolve computes the PDF and markdown target paths for paper under query's
// folder. The filename derives from the sanitized title; when the title is
// empty or already claimed by a different paper, the paper's identifier is
// appended to keep paths collision-free.
func (s *Store) Resolve(query string, paper types.PaperRecord) Paths {
	folder := FolderName(query)
	name := FolderName(paper.Title)
	if name == "" {
		name = safeID(paper.ID)
	}

	key := folder + "/" + name
	if owner, ok := s.claimed[key]; ok && owner != paper.ID {
		name = name + "_" + safeID(paper.ID)
		key = folder + "/" + name
	}
	s.claimed[key] = paper.ID

	return Paths{
		PDF: filepath.Join(s.root, pdfDir, folder, name+".pdf"),
		MD:  filepath.Join(s.root, mdDir, folder, name+".md"),
	}
}

// ManifestPath returns the per-query run manifest location.
func (s *Store) ManifestPath(query string) string {
	return filepath.Join(s.root, manifestDir, FolderName(query)+".yaml")
}

// LedgerPath returns the location of the run ledger database.
func (s *Store) LedgerPath() string {
	return filepath.Join(s.root, "harvest.db")
}

// EnsureDirs creates the per-query pdf and markdown folders. Creation is
// idempotent; existing directories are not an error.
func (s *Store) EnsureDirs(query string) error {
	folder := FolderName(query)
	for _, dir := range []string{
		filepath.Join(s.root, pdfDir, folder),
		filepath.Join(s.root, mdDir, folder),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return nil
}

// Exists reports whether a file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// safeID makes an identifier usable as a path segment.
func safeID(id string) string {
	return strings.ReplaceAll(id, "/", "-")
}
