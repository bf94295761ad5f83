package batch

import "github.com/at-ishikawa/diarium2journey/internal/diarium"

// Result is the outcome of converting one day-folder.
type Result struct {
	Folder   string
	EntryID  string
	Photos   int
	Warnings []*diarium.MalformedMetadataError
	Err      error
}

func (r Result) Succeeded() bool {
	return r.Err == nil
}

// Summary collects the results of one run. Results follow the order of the
// folders in the input directory, not the order they finished in.
type Summary struct {
	RunID         string
	Results       []Result
	ArchivePath   string
	ArchivedFiles int
}

// Failed returns the results of folders that could not be converted.
func (s *Summary) Failed() []Result {
	var failed []Result
	for _, result := range s.Results {
		if !result.Succeeded() {
			failed = append(failed, result)
		}
	}
	return failed
}

// Succeeded returns the results of folders that were converted.
func (s *Summary) Succeeded() []Result {
	var succeeded []Result
	for _, result := range s.Results {
		if result.Succeeded() {
			succeeded = append(succeeded, result)
		}
	}
	return succeeded
}

// WarningCount returns the number of malformed metadata paragraphs across all folders.
func (s *Summary) WarningCount() int {
	count := 0
	for _, result := range s.Results {
		count += len(result.Warnings)
	}
	return count
}
