// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cdn

import "net/http"

// Response headers used by the CDN management API. Lookups against these
// names are exact; they are not canonicalised.
const (
	HeaderEnabled      = "X-Cdn-Enabled"
	HeaderIOSURI       = "X-Cdn-Ios-Uri"
	HeaderURI          = "X-Cdn-Uri"
	HeaderStreamingURI = "X-Cdn-Streaming-Uri"
	HeaderSSLURI       = "X-Cdn-Ssl-Uri"
)

// URLSet holds the CDN-facing URLs of a container. An empty field means
// the server did not report that URL.
type URLSet struct {
	IOSURI       string `json:"ios_uri,omitempty" yaml:"ios_uri,omitempty"`
	URI          string `json:"uri,omitempty" yaml:"uri,omitempty"`
	StreamingURI string `json:"streaming_uri,omitempty" yaml:"streaming_uri,omitempty"`
	SSLURI       string `json:"ssl_uri,omitempty" yaml:"ssl_uri,omitempty"`
}

// IsEmpty reports whether no URL is set.
func (u URLSet) IsEmpty() bool {
	return u == URLSet{}
}

// ExtractURLs maps the URI headers in h onto a URLSet. Missing headers
// leave the matching field empty.
func ExtractURLs(h http.Header) URLSet {
	return URLSet{
		IOSURI:       headerValue(h, HeaderIOSURI),
		URI:          headerValue(h, HeaderURI),
		StreamingURI: headerValue(h, HeaderStreamingURI),
		SSLURI:       headerValue(h, HeaderSSLURI),
	}
}

func headerValue(h http.Header, name string) string {
	if values := h[name]; len(values) > 0 {
		return values[0]
	}
	return ""
}
