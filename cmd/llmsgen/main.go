// Package main provides the entry point for the llmsgen CLI.
//
// llmsgen crawls a documentation website and generates llms.txt
// artifacts: a curated markdown index, a full-text concatenation, and
// one markdown file per page.
//
// Usage:
//
//	llmsgen generate <site-url>
//	llmsgen generate --max-pages 100 <site-url>...
//
// See --help for all available options.
package main

// main is the entry point for llmsgen.
func main() {
	Execute()
}
