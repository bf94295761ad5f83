package diarium

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedLanguage is returned when the configured language has no
	// entry in the localization table.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrMissingDocument is returned when a day-folder has no exported document.
	ErrMissingDocument = errors.New("no entry file")

	// ErrInvalidFolderDate is returned when a day-folder name is not a date.
	ErrInvalidFolderDate = errors.New("folder name is not a date")
)

// MalformedMetadataError describes a metadata paragraph whose payload did not
// have the expected shape. It is reported as a warning; the entry is still
// produced with whatever the parse yielded.
type MalformedMetadataError struct {
	Kind    FragmentKind
	Payload string
	Reason  string
}

func (e *MalformedMetadataError) Error() string {
	return fmt.Sprintf("malformed %s metadata %q: %s", e.Kind, e.Payload, e.Reason)
}
