package testsupport

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// MustParseHTML parses rendered markup (a fragment or a full page) into a
// goquery document.
func MustParseHTML(t *testing.T, markup string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// MustFind returns the selection for selector and fails the test when it
// matches nothing.
func MustFind(t *testing.T, doc *goquery.Document, selector string) *goquery.Selection {
	t.Helper()

	sel := doc.Find(selector)
	if sel.Length() == 0 {
		html, _ := doc.Html()
		t.Fatalf("selector %q matched nothing in:\n%s", selector, html)
	}
	return sel
}

// MustAttr returns the attribute value of the first node in sel.
func MustAttr(t *testing.T, sel *goquery.Selection, name string) string {
	t.Helper()

	value, ok := sel.First().Attr(name)
	if !ok {
		html, _ := goquery.OuterHtml(sel.First())
		t.Fatalf("attribute %q missing on %s", name, html)
	}
	return value
}

// Text returns the whitespace-normalised text of sel.
func Text(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
