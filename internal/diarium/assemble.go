package diarium

import (
	"fmt"
	"strconv"
	"time"

	"github.com/at-ishikawa/diarium2journey/internal/journey"
)

const idSuffix = "-diarium"

// ParseDay parses a day-folder name as a calendar date in UTC.
func ParseDay(folder string, layout string) (time.Time, error) {
	day, err := time.ParseInLocation(layout, folder, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %w", ErrInvalidFolderDate, folder, err)
	}
	return day, nil
}

// EntryID returns "<epoch-ms>-diarium" for day.
func EntryID(day time.Time) string {
	return strconv.FormatInt(day.UnixMilli(), 10) + idSuffix
}

// PhotoNames prefixes every media file name with the entry id, keeping the order.
func PhotoNames(entryID string, media []string) []string {
	photos := make([]string, len(media))
	for i, name := range media {
		photos[i] = entryID + "-" + name
	}
	return photos
}

// Assemble stamps the extracted entry with the id and dates derived from day
// and the renamed media files.
func Assemble(day time.Time, extraction Extraction, media []string) journey.Entry {
	entry := extraction.Entry
	timestamp := day.UnixMilli()
	entry.ID = EntryID(day)
	entry.DateJournal = timestamp
	entry.DateModified = timestamp
	entry.Photos = PhotoNames(entry.ID, media)
	if entry.Tags == nil {
		entry.Tags = []string{}
	}
	return entry
}
