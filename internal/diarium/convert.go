// Package diarium turns documents exported by the Diarium journal app into Journey entries.
package diarium

import (
	"fmt"
	"io"
	"time"

	"github.com/at-ishikawa/diarium2journey/internal/journey"
)

// Converter runs the clean, classify and extract steps over one document.
// It holds no mutable state and is safe for concurrent use.
type Converter struct {
	classifier *Classifier
}

func NewConverter(labels Labels) *Converter {
	return &Converter{classifier: NewClassifier(labels)}
}

// Extract reads a document and returns the entry content found in it.
func (c *Converter) Extract(r io.Reader) (Extraction, error) {
	document, err := CleanDocument(r)
	if err != nil {
		return Extraction{}, fmt.Errorf("CleanDocument() > %w", err)
	}
	return Extract(c.classifier.Fragments(document)), nil
}

// Convert reads the document of the day-folder for day and assembles the final entry.
func (c *Converter) Convert(r io.Reader, day time.Time, media []string) (journey.Entry, []*MalformedMetadataError, error) {
	extraction, err := c.Extract(r)
	if err != nil {
		return journey.Entry{}, nil, err
	}
	return Assemble(day, extraction, media), extraction.Warnings, nil
}
