package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/llms-txt/generator/internal/crawler"
	"github.com/llms-txt/generator/internal/database"
	"github.com/llms-txt/generator/internal/model"
	"github.com/llms-txt/generator/internal/report"
)

// CrawlStep walks the target site and fills the result with one record
// per processed page. It is always the first step of a run; everything
// after it only reads what the crawl collected.
type CrawlStep struct {
	// spider performs the traversal.
	spider *crawler.Spider
}

// NewCrawlStep creates the crawl step around a configured spider.
func NewCrawlStep(spider *crawler.Spider) *CrawlStep {
	return &CrawlStep{spider: spider}
}

// Name returns the step name.
func (s *CrawlStep) Name() string {
	return "crawl"
}

// Do executes the crawl and stamps the finish time.
func (s *CrawlStep) Do(ctx context.Context, result *model.CrawlResult) error {
	err := s.spider.Crawl(ctx, result)
	result.FinishedAt = time.Now()
	return err
}

// StoreStep writes each record's markdown body into the output store.
//
// Design decision: A page that cannot be written is logged and skipped
// rather than failing the run. The index still lists it, and the full
// document treats the missing file as a gap, which matches how every
// other per-page failure degrades.
type StoreStep struct {
	store  *report.Store
	logger *slog.Logger
}

// NewStoreStep creates the store step.
func NewStoreStep(store *report.Store, logger *slog.Logger) *StoreStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &StoreStep{store: store, logger: logger}
}

// Name returns the step name.
func (s *StoreStep) Name() string {
	return "store"
}

// Do writes every record's body to the markdown directory.
func (s *StoreStep) Do(ctx context.Context, result *model.CrawlResult) error {
	for _, rec := range result.Records {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := s.store.WritePage(rec.StorageKey, rec.Body); err != nil {
			s.logger.Warn("failed to store page",
				"storageKey", rec.StorageKey,
				"error", err,
			)
		}
	}
	return nil
}

// RenderStep writes the two top-level artifacts: the llms.txt index and
// the llms-full.txt concatenation. It runs after StoreStep because the
// full document reads page bodies back from the store.
type RenderStep struct {
	store  *report.Store
	logger *slog.Logger
}

// NewRenderStep creates the render step.
func NewRenderStep(store *report.Store, logger *slog.Logger) *RenderStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &RenderStep{store: store, logger: logger}
}

// Name returns the step name.
func (s *RenderStep) Name() string {
	return "render"
}

// Do renders both artifacts into the store's root directory.
func (s *RenderStep) Do(ctx context.Context, result *model.CrawlResult) error {
	if err := s.renderIndex(result); err != nil {
		return err
	}
	return s.renderFull(result)
}

func (s *RenderStep) renderIndex(result *model.CrawlResult) error {
	f, err := s.store.CreateArtifact(report.IndexFileName)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck // Close after successful sync below

	n, err := report.NewIndexWriter(f).Write(result)
	if err != nil {
		return err
	}

	s.logger.Debug("index rendered", "bytes", n, "site", result.SiteHost)
	return f.Close()
}

func (s *RenderStep) renderFull(result *model.CrawlResult) error {
	f, err := s.store.CreateArtifact(report.FullFileName)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck // Close after successful sync below

	n, err := report.NewFullWriter(f, s.store).Write(result)
	if err != nil {
		return err
	}

	s.logger.Debug("full document rendered", "bytes", n, "site", result.SiteHost)
	return f.Close()
}

// ArchiveStep records the completed run in the SQLite archive.
//
// Design decision: Archive failures never fail the run. The artifacts on
// disk are the product; history is bookkeeping. A nil archive turns the
// step into a no-op, which is how --no-archive is implemented.
type ArchiveStep struct {
	archive *database.Archive
	logger  *slog.Logger
}

// NewArchiveStep creates the archive step. A nil archive disables it.
func NewArchiveStep(archive *database.Archive, logger *slog.Logger) *ArchiveStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArchiveStep{archive: archive, logger: logger}
}

// Name returns the step name.
func (s *ArchiveStep) Name() string {
	return "archive"
}

// Do saves the run, if archiving is enabled.
func (s *ArchiveStep) Do(ctx context.Context, result *model.CrawlResult) error {
	if s.archive == nil {
		return nil
	}

	if err := s.archive.SaveRun(ctx, result); err != nil {
		s.logger.Warn("failed to archive run",
			"site", result.SiteHost,
			"error", err,
		)
	}
	return nil
}
