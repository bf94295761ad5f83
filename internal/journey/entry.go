// Package journey writes entries in the Journey import format and packages them into an archive.
package journey

// DefaultWeatherID is the placeholder weather code Journey expects when no weather is known.
const DefaultWeatherID = 701

// Entry is one journal day in the Journey import format.
// Field order matches the order Journey itself exports.
type Entry struct {
	Text         string   `json:"text"`
	DateModified int64    `json:"date_modified"`
	DateJournal  int64    `json:"date_journal"`
	ID           string   `json:"id"`
	PreviewText  string   `json:"preview_text"`
	Address      string   `json:"address"`
	MusicArtist  string   `json:"music_artist"`
	MusicTitle   string   `json:"music_title"`
	Lat          *string  `json:"lat"`
	Lon          *string  `json:"lon"`
	Mood         int      `json:"mood"`
	Weather      Weather  `json:"weather"`
	Photos       []string `json:"photos"`
	Tags         []string `json:"tags"`
}

// Weather is never populated from Diarium exports; it always carries the placeholder shape.
type Weather struct {
	ID          int      `json:"id"`
	DegreeC     *float64 `json:"degree_c"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Place       string   `json:"place"`
}

// NewEntry returns an entry with every placeholder field set and empty lists.
func NewEntry() Entry {
	return Entry{
		Weather: Weather{ID: DefaultWeatherID},
		Photos:  []string{},
		Tags:    []string{},
	}
}
