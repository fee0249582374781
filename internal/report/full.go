package report

import (
	"fmt"
	"io"

	"github.com/llms-txt/generator/internal/model"
)

// FullWriter renders llms-full.txt: every stored page body in crawl
// order, each under a title heading and followed by a separator.
//
// Design decision: Unlike the index, the full document is written with
// plain formatting rather than the markdown builder because the page
// bodies are already rendered markdown. Re-feeding them through a
// builder would risk re-escaping content that must pass through as-is.
type FullWriter struct {
	output io.Writer

	// store is read back for each record's body. A record whose file
	// cannot be located is skipped silently; it still appears in the
	// index.
	store *Store
}

// NewFullWriter creates a FullWriter reading bodies from the store.
func NewFullWriter(output io.Writer, store *Store) *FullWriter {
	return &FullWriter{output: output, store: store}
}

// Write renders the full document. All records are included in crawl
// order with no classification; only records whose stored body is
// missing are dropped, and that is a gap, not an error.
func (w *FullWriter) Write(result *model.CrawlResult) (int, error) {
	total := 0
	for _, rec := range result.Records {
		body, ok := w.store.ReadPage(rec.StorageKey)
		if !ok {
			continue
		}

		n, err := fmt.Fprintf(w.output, "# %s\n\n%s\n\n---\n\n", rec.Title, body)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
