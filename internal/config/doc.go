// Package config holds the run configuration for the generator.
//
// Configuration is populated from CLI flags into a single flat Config
// struct and passed through the application by dependency injection
// rather than global state. An optional YAML file adds per-site
// overrides (cookies, headers, ignore prefixes) for sites that need
// them.
package config
