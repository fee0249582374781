// Package log provides structured logging with credential redaction.
//
// The site configuration can carry cookies and authorization headers for
// crawling access-protected documentation. Those values flow through the
// fetcher and would otherwise end up in debug logs; the handler in this
// package masks them before they reach the underlying slog handler.
package log
