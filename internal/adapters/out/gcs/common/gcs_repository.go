// internal/adapters/out/gcs/common/gcs_repository.go
package common

import (
	"net/url"
	"strings"
)

// DefaultPublicBaseURL serves objects of publicly readable buckets.
const DefaultPublicBaseURL = "https://storage.googleapis.com"

// GCSPublicURL builds a public object URL.
// An empty baseURL means DefaultPublicBaseURL; each path segment is escaped.
func GCSPublicURL(baseURL, bucket, objectPath string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultPublicBaseURL
	}
	obj := strings.TrimLeft(strings.TrimSpace(objectPath), "/")
	segs := strings.Split(obj, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return base + "/" + strings.TrimSpace(bucket) + "/" + strings.Join(segs, "/")
}

// ParseGCSURL parses a GCS-like URL and returns (bucket, objectPath, ok).
//   - https://storage.googleapis.com/<bucket>/<object>
//   - https://storage.cloud.google.com/<bucket>/<object>
func ParseGCSURL(u string) (string, string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(u))
	if err != nil {
		return "", "", false
	}

	host := strings.ToLower(parsed.Host)
	if host != "storage.googleapis.com" && host != "storage.cloud.google.com" {
		return "", "", false
	}

	p := strings.TrimLeft(parsed.EscapedPath(), "/")
	parts := strings.SplitN(p, "/", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}

	objectPath, err := url.PathUnescape(parts[1])
	if err != nil {
		return "", "", false
	}
	return parts[0], objectPath, true
}
