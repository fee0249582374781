// Package model defines the data types shared across the crawl pipeline.
//
// The central type is PageRecord, one per successfully processed page.
// Records are created once by the crawler, immediately after a successful
// fetch and extraction, and are immutable afterwards. CrawlResult collects
// the ordered record sequence for a single run and is the unit passed
// between pipeline steps.
package model
