package diarium

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"unicode"

	"github.com/at-ishikawa/diarium2journey/internal/journey"
)

// PreviewLength is the number of characters of the text copied into the preview.
const PreviewLength = 512

// Extraction is an entry with its text, location and tags filled in, plus the
// metadata paragraphs that could not be parsed cleanly.
type Extraction struct {
	Entry    journey.Entry
	Warnings []*MalformedMetadataError
}

// Extract folds fragments into an entry in the order they are yielded.
func Extract(fragments iter.Seq[Fragment]) Extraction {
	extraction := Extraction{Entry: journey.NewEntry()}

	var text strings.Builder
	for fragment := range fragments {
		switch fragment.Kind {
		case FragmentContent:
			text.WriteString(fragment.Text)
			text.WriteString("\n")
		case FragmentHeader:
			text.WriteString("#")
			text.WriteString(fragment.Text)
			text.WriteString("\n\n")
		case FragmentLocation:
			extraction.applyLocation(fragment)
		case FragmentTags:
			extraction.applyTags(fragment)
		case FragmentPeople:
			extraction.applyPeople(fragment)
		}
	}

	extraction.Entry.Text = text.String()
	extraction.Entry.PreviewText = preview(extraction.Entry.Text)
	return extraction
}

// applyLocation parses "<Label>: <lat>, <lon>". A later location replaces an earlier one.
func (e *Extraction) applyLocation(fragment Fragment) {
	value := metadataValue(fragment)
	latitude, longitude, found := strings.Cut(value, ",")
	latitude = strings.TrimSpace(latitude)
	longitude = strings.TrimSpace(longitude)
	if !found || latitude == "" || longitude == "" {
		e.warn(fragment, `expected "<latitude>, <longitude>"`)
		return
	}

	for _, coordinate := range []string{latitude, longitude} {
		if _, err := strconv.ParseFloat(coordinate, 64); err != nil {
			e.warn(fragment, fmt.Sprintf("%q is not a number", coordinate))
			break
		}
	}
	e.Entry.Lat = &latitude
	e.Entry.Lon = &longitude
}

// applyTags parses "<Label>: tag1, tag2". Duplicates are kept.
func (e *Extraction) applyTags(fragment Fragment) {
	value := metadataValue(fragment)
	if value == "" {
		e.warn(fragment, "no tags after the label")
		return
	}
	e.Entry.Tags = append(e.Entry.Tags, strings.Split(value, ", ")...)
}

// applyPeople parses "<Label>: First Last, First2 Last2" into one tag per person.
func (e *Extraction) applyPeople(fragment Fragment) {
	value := metadataValue(fragment)
	if value == "" {
		e.warn(fragment, "no people after the label")
		return
	}
	for _, person := range strings.Split(value, ", ") {
		tag := personTag(person)
		if tag == "" {
			continue
		}
		e.Entry.Tags = append(e.Entry.Tags, tag)
	}
}

func (e *Extraction) warn(fragment Fragment, reason string) {
	e.Warnings = append(e.Warnings, &MalformedMetadataError{
		Kind:    fragment.Kind,
		Payload: fragment.Text,
		Reason:  reason,
	})
}

func metadataValue(fragment Fragment) string {
	return strings.TrimSpace(strings.TrimPrefix(fragment.Text, fragment.Label+":"))
}

func personTag(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
}

// preview cuts text after PreviewLength characters, possibly mid-word.
func preview(text string) string {
	count := 0
	for i := range text {
		if count == PreviewLength {
			return text[:i]
		}
		count++
	}
	return text
}
