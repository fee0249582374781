package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/llms-txt/generator/internal/config"
	"github.com/llms-txt/generator/internal/crawler"
	"github.com/llms-txt/generator/internal/database"
	"github.com/llms-txt/generator/internal/log"
	"github.com/llms-txt/generator/internal/model"
	"github.com/llms-txt/generator/internal/pipeline"
	"github.com/llms-txt/generator/internal/report"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [flags] <site-url>...",
		Short: "Crawl a website and generate llms.txt artifacts",
		Long: `Generate crawls a website starting from the given seed URL and writes:

  <output>/llms.txt           curated index of crawled pages
  <output>/llms-full.txt      full-text concatenation of all pages
  <output>/markdown/<page>.md one markdown file per page

Only pages on the seed URL's host are followed. Image, style, and script
URLs are skipped, and a politeness delay is enforced before every fetch.
With several seed URLs each site's artifacts land in a subdirectory named
after its host.

Examples:
  # Generate for a single site
  llmsgen generate https://docs.example.com

  # Cap the crawl and slow it down
  llmsgen generate --max-pages 100 --delay 2s https://docs.example.com

  # Skip a section of the site
  llmsgen generate --ignore https://docs.example.com/internal https://docs.example.com

  # Crawl several sites, two at a time
  llmsgen generate -b 2 https://docs.example.com https://docs.other.org

Configuration file (.llmsgen) example:
  sites:
    docs.example.com:
      cookie: "session_id=abc123"
      headers:
        Authorization: "Bearer token"
      delaySeconds: 0.5
      maxPages: 200`,
		Args: cobra.ArbitraryArgs,
		RunE: runGenerateCmd,
	}

	// Output flags
	cmd.Flags().StringP("output", "o", config.DefaultOutputDir,
		"Output directory for the generated artifacts")

	// Crawl behavior flags
	cmd.Flags().StringArray("ignore", nil,
		"URL prefix never crawled (repeatable)")
	cmd.Flags().Duration("delay", config.DefaultDelay,
		"Pause before every page fetch")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each HTTP request")
	cmd.Flags().IntP("max-pages", "p", 0,
		"Maximum pages to crawl per site (0 = unlimited)")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent with every request")
	cmd.Flags().Bool("respect-robots", false,
		"Honor robots.txt disallow rules")

	// Batch flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of sites crawled concurrently")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .llmsgen in current or home directory)")

	// Archive flags
	cmd.Flags().Bool("no-archive", false,
		"Do not record this run in the local history archive")
	cmd.Flags().String("archive-dir", config.XDGDataDir(),
		"Directory holding the history archive")

	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runGenerate(ctx, cmd, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.OutputDir, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.IgnorePrefixes, err = cmd.Flags().GetStringArray("ignore")
	if err != nil {
		return nil, err
	}

	cfg.Delay, err = cmd.Flags().GetDuration("delay")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.MaxPages, err = cmd.Flags().GetInt("max-pages")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	cfg.RespectRobots, err = cmd.Flags().GetBool("respect-robots")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	noArchive, err := cmd.Flags().GetBool("no-archive")
	if err != nil {
		return nil, err
	}
	cfg.Archive = !noArchive

	cfg.ArchiveDir, err = cmd.Flags().GetString("archive-dir")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load site-specific configurations from config file.
	// If the user explicitly specified a config file path, error if not
	// found. If no path was specified, silently use an empty config.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.SiteConfigs = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Positional arguments are the seed URLs.
	cfg.Targets = args

	return cfg, nil
}

// runGenerate executes the generation runs, one per target site.
func runGenerate(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	// Open the archive once; every site's run is recorded in it.
	var archive *database.Archive
	if cfg.Archive {
		var err error
		archive, err = database.Open(cfg.ArchiveDir, database.DefaultOptions())
		if err != nil {
			// History is bookkeeping; the artifacts still get written.
			logger.Warn("failed to open archive, continuing without history",
				"dir", cfg.ArchiveDir,
				"error", err,
			)
			archive = nil
		} else {
			defer archive.Close() //nolint:errcheck // Close on read-mostly handle at exit
		}
	}

	client := &http.Client{Timeout: cfg.Timeout}
	multiSite := len(cfg.Targets) > 1

	factory := func(seedURL string) (*pipeline.Pipeline, error) {
		return buildSitePipeline(ctx, client, cfg, archive, logger, seedURL, multiSite)
	}

	bp := pipeline.NewBatchProcessor(factory,
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	startTime := time.Now()
	results, err := bp.ProcessBatch(ctx, cfg.Targets)

	for _, result := range results {
		if result == nil {
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d pages", result.SiteHost, len(result.Records))
		if len(result.Failed) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), " (%d failed)", len(result.Failed))
		}
		fmt.Fprintf(cmd.OutOrStdout(), " -> %s\n", siteOutputDir(cfg.OutputDir, result, multiSite))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Done in %s\n", time.Since(startTime).Round(time.Millisecond))

	return err
}

// buildSitePipeline assembles the step chain for one target site.
func buildSitePipeline(ctx context.Context, client *http.Client, cfg *config.Config, archive *database.Archive, logger *slog.Logger, seedURL string, multiSite bool) (*pipeline.Pipeline, error) {
	host := ""
	if u, err := url.Parse(seedURL); err == nil {
		host = u.Host
	}
	siteConfig := cfg.SiteConfigs.GetSiteConfig(host)

	// Site-specific overrides win over global flags.
	delay := cfg.Delay
	if d := siteConfig.Delay(); d > 0 {
		delay = d
	}
	maxPages := cfg.MaxPages
	if siteConfig.MaxPages > 0 {
		maxPages = siteConfig.MaxPages
	}

	ignorePrefixes := make([]string, 0, len(cfg.IgnorePrefixes)+len(siteConfig.IgnorePrefixes))
	ignorePrefixes = append(ignorePrefixes, cfg.IgnorePrefixes...)
	ignorePrefixes = append(ignorePrefixes, siteConfig.IgnorePrefixes...)

	headers := make(map[string]string, len(siteConfig.Headers)+1)
	for k, v := range siteConfig.Headers {
		headers[k] = v
	}
	if siteConfig.Cookie != "" {
		headers["Cookie"] = siteConfig.Cookie
	}

	fetcherOpts := []crawler.FetcherOption{
		crawler.WithUserAgent(cfg.UserAgent),
	}
	if len(headers) > 0 {
		fetcherOpts = append(fetcherOpts, crawler.WithHeaders(headers))
	}
	fetcher := crawler.NewFetcher(client, delay, fetcherOpts...)

	spiderOpts := []crawler.SpiderOption{
		crawler.WithIgnorePrefixes(ignorePrefixes),
		crawler.WithMaxPages(maxPages),
		crawler.WithSpiderLogger(logger),
	}
	if cfg.RespectRobots {
		gate, err := crawler.NewRobotsGate(ctx, client, seedURL, cfg.UserAgent)
		if err != nil {
			return nil, fmt.Errorf("failed to load robots.txt for %s: %w", seedURL, err)
		}
		spiderOpts = append(spiderOpts, crawler.WithRobotsGate(gate))
	}
	spider := crawler.NewSpider(fetcher, spiderOpts...)

	outDir := cfg.OutputDir
	if multiSite {
		outDir = filepath.Join(cfg.OutputDir, host)
	}
	store, err := report.NewStore(outDir)
	if err != nil {
		return nil, err
	}

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewCrawlStep(spider),
		pipeline.NewStoreStep(store, logger),
		pipeline.NewRenderStep(store, logger),
		pipeline.NewArchiveStep(archive, logger),
	)
	return p, nil
}

// siteOutputDir returns the directory a site's artifacts were written to.
func siteOutputDir(outputDir string, result *model.CrawlResult, multiSite bool) string {
	if multiSite {
		return filepath.Join(outputDir, result.SiteHost)
	}
	return outputDir
}
