// Package extract turns fetched HTML into a title, a description, and a
// markdown body.
//
// Extraction is a pure pipeline: parse, prune the noise elements, then
// convert the content root. It never fails; on any problem it degrades to
// empty values so a badly formed page is still recorded by the crawl
// rather than dropped.
package extract
