package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. Where the original llms.txt tooling has
// an established default (one second between requests, ./output), we
// keep it.
const (
	// DefaultOutputDir is where artifacts land when -o is not given.
	DefaultOutputDir = "./output"

	// DefaultDelay is the pause before every page fetch. One second is
	// conservative and respectful of the target server; the delay
	// applies to the seed fetch as well.
	DefaultDelay = 1 * time.Second

	// DefaultTimeout bounds each individual HTTP request. Thirty
	// seconds covers slow documentation hosts without letting a dead
	// one stall the run for long.
	DefaultTimeout = 30 * time.Second

	// DefaultBatchSize is the number of sites crawled concurrently when
	// several seeds are given. Each site is still crawled sequentially
	// within its own run.
	DefaultBatchSize = 1

	// DefaultUserAgent identifies the generator in HTTP requests.
	// A descriptive User-Agent lets site operators identify the
	// traffic in their logs.
	DefaultUserAgent = "llmsgen/1.0 (+https://github.com/llms-txt/generator)"

	// AppName is the application name used for XDG directory paths.
	AppName = "llmsgen"
)

// Config holds all options for one invocation of the generator.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., CrawlConfig, OutputConfig) for simplicity. The number of
// options is manageable, and nesting would add complexity without
// significant benefit.
type Config struct {
	// Targets are the seed URLs, one crawl run per entry.
	Targets []string

	// OutputDir is the directory root for all artifacts. With a single
	// target the artifacts land here directly; with several targets
	// each site gets its own subdirectory named after its host.
	OutputDir string

	// IgnorePrefixes are URL prefixes that are never crawled.
	IgnorePrefixes []string

	// Delay is the pause enforced before every page fetch.
	Delay time.Duration

	// Timeout bounds each individual HTTP request.
	Timeout time.Duration

	// MaxPages caps the pages recorded per site. Zero means unlimited.
	MaxPages int

	// BatchSize is the number of concurrent site crawls.
	BatchSize int

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string

	// RespectRobots enables the robots.txt gate for discovered links.
	RespectRobots bool

	// Archive controls whether runs are recorded in the SQLite archive.
	Archive bool

	// ArchiveDir is the directory holding the archive database.
	// Defaults to the XDG data directory.
	ArchiveDir string

	// ConfigFilePath is the YAML config file path. If empty, the tool
	// searches for .llmsgen in the current directory and then in the
	// user's home directory.
	ConfigFilePath string

	// SiteConfigs holds per-site overrides loaded from the config file.
	SiteConfigs *File

	// Verbose enables debug-level log output.
	Verbose bool
}

// NewConfig creates a Config with default values.
// Callers override individual fields from CLI flags after creation.
func NewConfig() *Config {
	return &Config{
		OutputDir:  DefaultOutputDir,
		Delay:      DefaultDelay,
		Timeout:    DefaultTimeout,
		BatchSize:  DefaultBatchSize,
		UserAgent:  DefaultUserAgent,
		Archive:    true,
		ArchiveDir: XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for the generator.
// On Linux: ~/.local/share/llmsgen
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks the configuration and returns the first failing
// sentinel error. It runs once after flag parsing, before any crawling,
// so problems surface with a clear message up front.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}

	if c.OutputDir == "" {
		return ErrNoOutputDir
	}

	// A zero delay is allowed (useful in tests); a negative one is not.
	if c.Delay < 0 {
		return ErrInvalidDelay
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxPages < 0 {
		return ErrInvalidMaxPages
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	return nil
}
