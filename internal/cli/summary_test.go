package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/diarium2journey/internal/batch"
	"github.com/at-ishikawa/diarium2journey/internal/diarium"
)

func TestSummaryPrinter_Print(t *testing.T) {
	color.NoColor = true

	warning := &diarium.MalformedMetadataError{Kind: diarium.FragmentTags, Payload: "Tags:", Reason: "empty value"}

	tests := []struct {
		name          string
		summary       *batch.Summary
		tempDirectory string
		want          string
	}{
		{
			name: "all converted with archive",
			summary: &batch.Summary{
				Results:       []batch.Result{{Folder: "2017-07-27"}, {Folder: "2017-07-28"}},
				ArchivePath:   "out/journey.zip",
				ArchivedFiles: 3,
			},
			tempDirectory: "out/tmp",
			want: "Converted 2 of 2 day-folders\n" +
				"Archive with 3 files is in out/journey.zip\n" +
				"Please clear the temporary directory out/tmp yourself.\n",
		},
		{
			name: "failures and warnings",
			summary: &batch.Summary{
				Results: []batch.Result{
					{Folder: "2017-07-27", Warnings: []*diarium.MalformedMetadataError{warning}},
					{Folder: "2017-07-29", Err: errors.New("no entry file")},
				},
				ArchivePath:   "out/journey.zip",
				ArchivedFiles: 1,
			},
			want: "Converted 1 of 2 day-folders\n" +
				"  warning 2017-07-27: malformed tags metadata \"Tags:\": empty value\n" +
				"  failed  2017-07-29: no entry file\n" +
				"Archive with 1 files is in out/journey.zip\n",
		},
		{
			name: "no archive",
			summary: &batch.Summary{
				Results: []batch.Result{{Folder: "2017-07-27", Err: errors.New("context canceled")}},
			},
			tempDirectory: "out/tmp",
			want: "Converted 0 of 1 day-folders\n" +
				"  failed  2017-07-27: context canceled\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewSummaryPrinter(&buf).Print(tt.summary, tt.tempDirectory))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
