// Package testutil provides shared test helpers for creating config files and Diarium export fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// SetupTestConfig creates a minimal config file and the input directory for testing.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "export"), 0755))

	configContent := fmt.Sprintf(`language: ger
directories:
  input: %s
  output: %s
  temp: %s
export:
  workers: 2
`,
		filepath.Join(tmpDir, "export"),
		filepath.Join(tmpDir, "out"),
		filepath.Join(tmpDir, "out", "tmp"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// Paragraph is one paragraph of a Diarium document fixture.
type Paragraph struct {
	Class string
	Text  string
}

func Content(text string) Paragraph {
	return Paragraph{Class: "Content", Text: text}
}

func Header(text string) Paragraph {
	return Paragraph{Class: "Header", Text: text}
}

// Metadata returns a TagsLocation paragraph such as "Tags: a, b".
func Metadata(text string) Paragraph {
	return Paragraph{Class: "TagsLocation", Text: text}
}

// DiariumDocument renders paragraphs the way Diarium's HTML export lays them
// out, including the style sheet in the head. Paragraph text is escaped.
func DiariumDocument(paragraphs ...Paragraph) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Diarium</title>
<style>
p.Header { font-size: 1.4em; }
div > p { margin: 0; }
</style>
</head>
<body>
<div>
`)
	for _, p := range paragraphs {
		fmt.Fprintf(&b, "<p class=\"%s\">%s</p>\n", p.Class, html.EscapeString(p.Text))
	}
	b.WriteString("</div>\n</body>\n</html>\n")
	return b.String()
}

// CreateDayFolder creates inputDir/name holding entry.html with document and
// one small file per media name. No document is written when document is empty.
func CreateDayFolder(t *testing.T, fsys afero.Fs, inputDir, name, document string, media ...string) string {
	t.Helper()

	dir := filepath.Join(inputDir, name)
	require.NoError(t, fsys.MkdirAll(dir, 0755))
	if document != "" {
		require.NoError(t, afero.WriteFile(fsys, filepath.Join(dir, "entry.html"), []byte(document), 0644))
	}
	for _, m := range media {
		require.NoError(t, afero.WriteFile(fsys, filepath.Join(dir, m), []byte("media:"+m), 0644))
	}
	return dir
}
