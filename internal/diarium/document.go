package diarium

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const paragraphEnd = "</p>"

// CleanDocument strips every tag of an exported Diarium document except the
// paragraph markers and decodes HTML entities in the remaining text.
// Paragraph start tags are re-rendered in normalized form, line breaks become
// newlines and script or style bodies are dropped.
func CleanDocument(r io.Reader) (string, error) {
	z := html.NewTokenizer(r)
	var b strings.Builder
	rawDepth := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return "", fmt.Errorf("html.Tokenizer.Next() > %w", err)
			}
			return b.String(), nil
		case html.TextToken:
			if rawDepth > 0 {
				continue
			}
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.DataAtom {
			case atom.P:
				b.WriteString(paragraphMarker(tok))
			case atom.Br:
				b.WriteString("\n")
			case atom.Script, atom.Style:
				if tt == html.StartTagToken {
					rawDepth++
				}
			}
		case html.EndTagToken:
			tok := z.Token()
			switch tok.DataAtom {
			case atom.P:
				b.WriteString(paragraphEnd)
			case atom.Script, atom.Style:
				if rawDepth > 0 {
					rawDepth--
				}
			}
		}
	}
}

func paragraphMarker(tok html.Token) string {
	tok.Type = html.StartTagToken
	return tok.String()
}
