// Package crawler implements the site traversal engine.
//
// # Architecture
//
// The crawler is built around the Spider type, which walks a single site
// depth-first from a seed URL. Traversal is strictly sequential: at most
// one fetch is outstanding at a time, and each page is fully processed
// before the next one begins. A fixed delay precedes every fetch,
// including the seed, which caps the request rate without a separate
// rate-limiter data structure around the traversal.
//
// # Components
//
//   - Spider: drives traversal, owns the per-run visited set and record list
//   - Fetcher: HTTP fetch with timeout, identification, and charset decoding
//   - Normalize: canonicalizes URLs into deduplication keys
//   - InScope: decides whether a discovered link is eligible for crawling
//   - ParseLinks: enumerates outbound links in document order
//   - RobotsGate: optional robots.txt compliance check
//
// # Termination
//
// Sites commonly cross-link into cycles, so traversal uses an explicit
// work stack plus a visited set checked before every fetch. A normalized
// key enters the visited set at most once, and always before the network
// operation, so a page reachable over several link paths is fetched
// exactly once no matter how its URL is spelled.
package crawler
