// Package pipeline orchestrates the steps of a generation run.
//
// A run is a fixed sequence: crawl the site, store each page's markdown,
// render the llms.txt and llms-full.txt artifacts, and optionally record
// the run in the archive. Each step implements the Step interface and
// mutates the shared CrawlResult; the Pipeline executes them in order and
// decides what a step failure means for the rest of the run.
//
// BatchProcessor runs one pipeline per target site, concurrently, when
// several seed URLs are given.
package pipeline
