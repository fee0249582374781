package report

import (
	"io"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/llms-txt/generator/internal/model"
)

// indexBlurb is the one-line description under the index heading.
const indexBlurb = "AI-friendly documentation generated by llmsgen"

// IndexWriter renders the llms.txt index document.
//
// Design decision: We use the nao1215/markdown library for fluent
// markdown generation which provides:
//  1. Type-safe markdown generation
//  2. Deterministic output for reproducible artifacts
//  3. The same rendering stack as the per-page bodies
type IndexWriter struct {
	output io.Writer
}

// NewIndexWriter creates an IndexWriter that outputs to the given writer.
func NewIndexWriter(output io.Writer) *IndexWriter {
	return &IndexWriter{output: output}
}

// Write renders the index for a crawl result.
//
// Records are split into core and optional groups, preserving crawl
// order inside each group. A group with no records is omitted entirely:
// no empty headings appear in the document.
func (w *IndexWriter) Write(result *model.CrawlResult) (int, error) {
	core := make([]model.PageRecord, 0)
	optional := make([]model.PageRecord, 0)
	for _, rec := range result.Records {
		if rec.IsCore() {
			core = append(core, rec)
		} else {
			optional = append(optional, rec)
		}
	}

	md := markdown.NewMarkdown(w.output)
	md.H1(result.SiteHost)
	md.Blockquote(indexBlurb)

	if len(core) > 0 {
		md.H2("Core Documentation")
		md.BulletList(bullets(core, result.BaseURL)...)
	}
	if len(optional) > 0 {
		md.H2("Optional")
		md.BulletList(bullets(optional, result.BaseURL)...)
	}

	return len(md.String()), md.Build()
}

// bullets formats one index entry per record: the title links to the
// stored markdown file under the site's base URL, followed by the
// description.
func bullets(records []model.PageRecord, baseURL string) []string {
	base := strings.TrimRight(baseURL, "/")

	items := make([]string, 0, len(records))
	for _, rec := range records {
		link := markdown.Link(rec.Title, base+"/"+rec.StorageKey)
		items = append(items, link+": "+rec.Description)
	}
	return items
}
