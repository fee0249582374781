package config

import "time"

// SiteConfig holds per-site overrides for a single host.
// This lets one config file customize crawl behavior for sites that
// need authentication or different pacing.
type SiteConfig struct {
	// Cookie is an HTTP cookie sent with every request to this site.
	// Format: "name=value" or "name1=value1; name2=value2"
	Cookie string `yaml:"cookie,omitempty"`

	// Headers are custom HTTP headers for requests to this site.
	Headers map[string]string `yaml:"headers,omitempty"`

	// IgnorePrefixes are URL prefixes never crawled on this site.
	// They are appended to the prefixes given on the command line.
	IgnorePrefixes []string `yaml:"ignorePrefixes,omitempty"`

	// DelaySeconds overrides the global inter-request delay.
	// Zero means use the global value.
	DelaySeconds float64 `yaml:"delaySeconds,omitempty"`

	// MaxPages overrides the global page cap for this site.
	// Zero means use the global value.
	MaxPages int `yaml:"maxPages,omitempty"`
}

// Delay converts the override into a duration. Returns 0 when unset.
func (sc SiteConfig) Delay() time.Duration {
	return time.Duration(sc.DelaySeconds * float64(time.Second))
}

// File represents the structure of the .llmsgen configuration file.
type File struct {
	// Sites maps hostnames to their site-specific configurations.
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults contains configuration applied to every site unless
	// overridden in the site-specific entry.
	Defaults SiteConfig `yaml:"defaults,omitempty"`
}

// GetSiteConfig returns the configuration for a host, merging the
// site-specific entry over the defaults.
func (cf *File) GetSiteConfig(host string) SiteConfig {
	result := cf.Defaults

	siteConfig, ok := cf.Sites[host]
	if !ok {
		return result
	}

	if siteConfig.Cookie != "" {
		result.Cookie = siteConfig.Cookie
	}
	if len(siteConfig.Headers) > 0 {
		if result.Headers == nil {
			result.Headers = make(map[string]string)
		}
		for k, v := range siteConfig.Headers {
			result.Headers[k] = v
		}
	}
	if len(siteConfig.IgnorePrefixes) > 0 {
		result.IgnorePrefixes = append(result.IgnorePrefixes, siteConfig.IgnorePrefixes...)
	}
	if siteConfig.DelaySeconds > 0 {
		result.DelaySeconds = siteConfig.DelaySeconds
	}
	if siteConfig.MaxPages > 0 {
		result.MaxPages = siteConfig.MaxPages
	}

	return result
}
