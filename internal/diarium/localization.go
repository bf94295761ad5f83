package diarium

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed languages.yml
var defaultLanguages []byte

// Labels are the literal metadata labels Diarium writes for one language.
type Labels struct {
	Location string `yaml:"location"`
	Tags     string `yaml:"tags"`
	People   string `yaml:"people"`
}

// Localization maps a language code to its metadata labels.
// It is never modified after loading, so it can be shared between goroutines.
type Localization map[string]Labels

// DefaultLocalization returns the embedded table.
func DefaultLocalization() (Localization, error) {
	var table Localization
	if err := yaml.Unmarshal(defaultLanguages, &table); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(languages.yml) > %w", err)
	}
	return table, nil
}

// LoadLocalization returns the embedded table extended by the languages in
// path. Entries in the file replace embedded entries with the same code.
// An empty path returns the embedded table.
func LoadLocalization(path string) (Localization, error) {
	table, err := DefaultLocalization()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return table, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	var extra Localization
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", path, err)
	}
	for code, labels := range extra {
		if labels.Location == "" || labels.Tags == "" || labels.People == "" {
			return nil, fmt.Errorf("language %q in %s must define location, tags and people labels", code, path)
		}
		table[code] = labels
	}
	return table, nil
}

// Lookup returns the labels for code.
func (l Localization) Lookup(code string) (Labels, error) {
	labels, ok := l[code]
	if !ok {
		return Labels{}, fmt.Errorf("%w %q (supported: %v)", ErrUnsupportedLanguage, code, l.Codes())
	}
	return labels, nil
}

// Codes returns the supported language codes in sorted order.
func (l Localization) Codes() []string {
	codes := make([]string, 0, len(l))
	for code := range l {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
