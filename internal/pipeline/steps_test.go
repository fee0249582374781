package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/llms-txt/generator/internal/crawler"
	"github.com/llms-txt/generator/internal/database"
	"github.com/llms-txt/generator/internal/model"
	"github.com/llms-txt/generator/internal/report"
)

// newDocsServer serves a two-page documentation site.
func newDocsServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`<html><head><title>Docs Home</title>
			<meta name="description" content="The documentation portal">
			</head><body><main><p>Welcome.</p>
			<a href="/guide">Guide</a></main></body></html>`))
	})
	mux.HandleFunc("/guide", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Guide</title></head>
			<body><main><p>Step one.</p></main></body></html>`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// TestFullRun tests the whole step chain against a live test server.
func TestFullRun(t *testing.T) {
	t.Parallel()

	srv := newDocsServer(t)
	outDir := t.TempDir()

	store, err := report.NewStore(outDir)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	archive, err := database.Open(t.TempDir(), database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	defer archive.Close()

	fetcher := crawler.NewFetcher(srv.Client(), 0)
	spider := crawler.NewSpider(fetcher)

	p := New()
	p.AddSteps(
		NewCrawlStep(spider),
		NewStoreStep(store, nil),
		NewRenderStep(store, nil),
		NewArchiveStep(archive, nil),
	)

	result := model.NewCrawlResult(srv.URL)
	if err := p.Execute(context.Background(), result); err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}

	if len(result.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(result.Records))
	}
	if result.FinishedAt.IsZero() {
		t.Error("expected finish time to be stamped")
	}

	// Per-page markdown files exist.
	for _, name := range []string{"index.md", "guide.md"} {
		if _, err := os.Stat(filepath.Join(outDir, "markdown", name)); err != nil {
			t.Errorf("expected stored page %s: %v", name, err)
		}
	}

	// Index artifact lists the guide page.
	index, err := os.ReadFile(filepath.Join(outDir, report.IndexFileName))
	if err != nil {
		t.Fatalf("failed to read index: %v", err)
	}
	if !strings.Contains(string(index), "[Guide]") {
		t.Errorf("expected guide link in index, got:\n%s", index)
	}

	// Full artifact concatenates both bodies.
	full, err := os.ReadFile(filepath.Join(outDir, report.FullFileName))
	if err != nil {
		t.Fatalf("failed to read full document: %v", err)
	}
	if !strings.Contains(string(full), "Step one.") {
		t.Errorf("expected guide body in full document, got:\n%s", full)
	}

	// The run landed in the archive.
	runs, err := archive.ListRuns(context.Background(), 1)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 1 || runs[0].PageCount != 2 {
		t.Errorf("expected archived run with 2 pages, got %+v", runs)
	}
}

// TestArchiveStepNilArchive tests that a nil archive is a no-op.
func TestArchiveStepNilArchive(t *testing.T) {
	t.Parallel()

	step := NewArchiveStep(nil, nil)
	result := model.NewCrawlResult("https://example.com")

	if err := step.Do(context.Background(), result); err != nil {
		t.Errorf("expected no-op, got %v", err)
	}
}

// TestStoreStepDegradesPerPage tests that one unwritable page does not
// fail the step.
func TestStoreStepDegradesPerPage(t *testing.T) {
	t.Parallel()

	store, err := report.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	result := model.NewCrawlResult("https://example.com")
	result.Records = []model.PageRecord{
		// A key containing a path separator cannot be created because
		// its parent directory does not exist.
		{SourceURL: "https://example.com/bad", StorageKey: "no-such-dir/page.md", Body: "x"},
		{SourceURL: "https://example.com/good", StorageKey: "good.md", Body: "kept"},
	}

	step := NewStoreStep(store, nil)
	if err := step.Do(context.Background(), result); err != nil {
		t.Fatalf("expected degradation, got %v", err)
	}

	if body, ok := store.ReadPage("good.md"); !ok || body != "kept" {
		t.Errorf("expected the good page to be stored, got %q (%v)", body, ok)
	}
}
