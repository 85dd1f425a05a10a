package preview

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"remoteboard/internal/util"
)

const (
	DefaultSnippetChars = 180

	noDescription = "No description available"
)

// PlainText returns the text content of an HTML fragment with whitespace
// collapsed. Input that fails to parse is returned cleaned but otherwise as is.
func PlainText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return util.CleanText(fragment)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return util.CleanText(fragment)
	}
	doc.Find("script, style, noscript").Remove()
	// block elements would otherwise glue words together
	doc.Find("p, br, li, div, h1, h2, h3, h4, h5, h6, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})
	return util.CleanText(doc.Text())
}

// Snippet is the card preview of a description: markup stripped, cut to n
// characters and always followed by " ...".
func Snippet(description string, n int) string {
	if n <= 0 {
		n = DefaultSnippetChars
	}
	text := PlainText(util.Or(description, noDescription))
	return util.Truncate(text, n) + " ..."
}
