package diarium

import (
	"iter"
	"strings"
)

// FragmentKind classifies a paragraph of a cleaned document.
type FragmentKind int

const (
	FragmentContent FragmentKind = iota + 1
	FragmentHeader
	FragmentLocation
	FragmentTags
	FragmentPeople
)

func (k FragmentKind) String() string {
	switch k {
	case FragmentContent:
		return "content"
	case FragmentHeader:
		return "header"
	case FragmentLocation:
		return "location"
	case FragmentTags:
		return "tags"
	case FragmentPeople:
		return "people"
	default:
		return "unknown"
	}
}

// Class attributes Diarium puts on its paragraphs.
const (
	contentClass  = `class="Content"`
	headerClass   = `class="Header"`
	metadataClass = `class="TagsLocation"`
)

// Fragment is one classified paragraph. Label holds the matched metadata label
// and is empty for content and header fragments.
type Fragment struct {
	Kind  FragmentKind
	Label string
	Text  string
}

// Classifier splits cleaned documents into fragments using the labels of one language.
type Classifier struct {
	labels Labels
}

func NewClassifier(labels Labels) *Classifier {
	return &Classifier{labels: labels}
}

// Fragments yields the recognized fragments of document in document order.
// Paragraphs without a known class and metadata paragraphs without a known
// label (weather, for instance) are skipped.
func (c *Classifier) Fragments(document string) iter.Seq[Fragment] {
	return func(yield func(Fragment) bool) {
		for slice := range strings.SplitSeq(document, paragraphEnd) {
			fragment, ok := c.classify(slice)
			if !ok {
				continue
			}
			if !yield(fragment) {
				return
			}
		}
	}
}

func (c *Classifier) classify(slice string) (Fragment, bool) {
	marker, payload, ok := splitMarker(slice)
	if !ok {
		return Fragment{}, false
	}

	switch {
	case strings.Contains(marker, contentClass):
		return Fragment{Kind: FragmentContent, Text: payload}, true
	case strings.Contains(marker, headerClass):
		return Fragment{Kind: FragmentHeader, Text: payload}, true
	case strings.Contains(marker, metadataClass):
		return c.classifyMetadata(payload)
	}
	return Fragment{}, false
}

func (c *Classifier) classifyMetadata(payload string) (Fragment, bool) {
	candidates := []struct {
		kind  FragmentKind
		label string
	}{
		{FragmentLocation, c.labels.Location},
		{FragmentTags, c.labels.Tags},
		{FragmentPeople, c.labels.People},
	}
	for _, candidate := range candidates {
		if strings.HasPrefix(payload, candidate.label+":") {
			return Fragment{Kind: candidate.kind, Label: candidate.label, Text: payload}, true
		}
	}
	return Fragment{}, false
}

// splitMarker returns the first paragraph start tag of slice and the text after it.
func splitMarker(slice string) (marker, payload string, ok bool) {
	offset := 0
	for {
		i := strings.Index(slice[offset:], "<p")
		if i < 0 {
			return "", "", false
		}
		start := offset + i
		next := start + len("<p")
		if next < len(slice) && (slice[next] == '>' || slice[next] == ' ') {
			end := strings.IndexByte(slice[start:], '>')
			if end < 0 {
				return "", "", false
			}
			end += start
			return slice[start : end+1], slice[end+1:], true
		}
		offset = next
	}
}
