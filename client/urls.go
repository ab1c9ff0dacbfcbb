package client

// URLBuilder constructs URLs for a registry.
type URLBuilder interface {
	Registry(name, version string) string
	Download(name, version string) string
	Documentation(name, version string) string
	PURL(name, version string) string
}

// BuildURLs returns a map of all non-empty URLs for a package.
// Keys are "registry", "download", "docs", and "purl".
func BuildURLs(urls URLBuilder, name, version string) map[string]string {
	out := make(map[string]string)
	if u := urls.Registry(name, version); u != "" {
		out["registry"] = u
	}
	if u := urls.Download(name, version); u != "" {
		out["download"] = u
	}
	if u := urls.Documentation(name, version); u != "" {
		out["docs"] = u
	}
	if u := urls.PURL(name, version); u != "" {
		out["purl"] = u
	}
	return out
}
