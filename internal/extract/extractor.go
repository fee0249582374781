package extract

import (
	"bytes"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// noiseSelector matches the elements that are never content: site
// chrome and executable or styling resources. They are removed from the
// document before any text extraction.
const noiseSelector = "nav, header, footer, script, style"

// Result holds everything extracted from one page.
type Result struct {
	// Title is the trimmed <title> text, or empty when the document has
	// no title element. The caller decides the fallback (the crawl
	// engine substitutes the storage key on the record, while the
	// markdown header below falls back to the page URL).
	Title string

	// Description is the content of the meta description tag, or empty.
	Description string

	// Body is the markdown conversion of the content root, prefixed
	// with a title header. Empty when no content root resolves.
	Body string
}

// Extract parses rawHTML and returns the page's title, description, and
// markdown body.
//
// The content root is the first <main> element when one exists,
// otherwise the document body. A page with neither yields an empty Body
// and is still worth recording: it appears in the index but contributes
// nothing to the full document.
//
// Design decision: We prune the parsed tree with goquery and hand the
// pruned root to html-to-markdown rather than converting the whole
// document because:
//  1. Noise removal before conversion keeps boilerplate out of the output
//  2. Selecting <main> first matches how documentation sites mark content
//  3. The two concerns (pruning, converting) stay independently testable
func Extract(rawHTML []byte, pageURL string) Result {
	var res Result

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rawHTML))
	if err != nil {
		return res
	}

	doc.Find(noiseSelector).Remove()

	res.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		res.Description = desc
	}

	root := doc.Find("main").First()
	if root.Length() == 0 {
		root = doc.Find("body").First()
	}
	if root.Length() == 0 {
		return res
	}

	rootHTML, err := goquery.OuterHtml(root)
	if err != nil {
		return res
	}

	body, err := htmltomarkdown.ConvertString(rootHTML)
	if err != nil {
		return res
	}

	header := res.Title
	if header == "" {
		header = pageURL
	}

	res.Body = "# " + header + "\n\n" + body
	return res
}
