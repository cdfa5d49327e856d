// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-harvester pipeline.
package types

import "time"

// PaperRecord represents one paper returned by a search query. Records are
// produced by the search stage and read-only downstream.
type PaperRecord struct {
	// ID is the canonical identifier from the source (e.g. "2301.07041").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the paper abstract or summary.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Published is the original submission date.
	Published time.Time `json:"published" yaml:"published"`

	// Updated is the date of the most recent revision.
	Updated time.Time `json:"updated,omitempty" yaml:"updated,omitempty"`

	// PDFURL is the location of the PDF artifact for this paper.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`
}
