// Package database provides SQLite-based archiving of crawl runs.
//
// Every generation run can be recorded in a local archive so that the
// history command can show what was crawled, when, and how many pages
// each run produced. The archive lives in the user's XDG data directory
// by default and is purely additive: the generator never reads archived
// pages back during a crawl.
package database
