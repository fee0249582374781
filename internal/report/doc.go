// Package report renders the output artifacts of a crawl run.
//
// Three artifacts live under one output directory: a markdown file per
// crawled page in the markdown/ subdirectory, the llms.txt index that
// groups pages into "Core Documentation" and "Optional" sections, and
// llms-full.txt, the concatenation of every stored page body in crawl
// order. The Store owns the directory layout; IndexWriter and FullWriter
// render the two aggregate documents.
package report
