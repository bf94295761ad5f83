package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfig(t, tmpDir)

	want := filepath.Join(tmpDir, "config.yml")
	assert.Equal(t, want, got)

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Contains(t, string(content), "language: ger")
	assert.Contains(t, string(content), filepath.Join(tmpDir, "export"))

	info, err := os.Stat(filepath.Join(tmpDir, "export"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDiariumDocument(t *testing.T) {
	got := DiariumDocument(
		Header("Morning"),
		Content("Fish & chips"),
		Metadata("Tags: a, b"),
	)

	assert.Contains(t, got, `<p class="Header">Morning</p>`)
	assert.Contains(t, got, `<p class="Content">Fish &amp; chips</p>`)
	assert.Contains(t, got, `<p class="TagsLocation">Tags: a, b</p>`)
	assert.Contains(t, got, "<style>")
}

func TestCreateDayFolder(t *testing.T) {
	tests := []struct {
		name      string
		document  string
		media     []string
		wantFiles []string
	}{
		{
			name:      "document and media",
			document:  DiariumDocument(Content("hello")),
			media:     []string{"a.jpg", "b.png"},
			wantFiles: []string{"a.jpg", "b.png", "entry.html"},
		},
		{
			name:      "media only",
			media:     []string{"a.jpg"},
			wantFiles: []string{"a.jpg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			dir := CreateDayFolder(t, fsys, "/export", "2017-07-27", tt.document, tt.media...)
			assert.Equal(t, filepath.Join("/export", "2017-07-27"), dir)

			infos, err := afero.ReadDir(fsys, dir)
			require.NoError(t, err)
			var names []string
			for _, info := range infos {
				names = append(names, info.Name())
			}
			assert.Equal(t, tt.wantFiles, names)
		})
	}
}
