package gateway

import "strings"

// BuildURL joins the gateway base URL, the provider identifier and an
// optional extra path into the URL to probe. Leading and trailing path
// separators on each segment are stripped before joining. Segments are
// not URL-encoded, they pass through verbatim.
func BuildURL(baseURL string, providerID string, extraPath string) string {
	base := strings.TrimRight(baseURL, "/")
	provider := strings.Trim(providerID, "/")
	if extra := strings.Trim(extraPath, "/"); extra != "" {
		return base + "/" + provider + "/" + extra
	}
	return base + "/" + provider
}
