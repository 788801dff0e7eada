// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cdn_test

import (
	"net/http"

	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/cdn"
)

type urlsSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&urlsSuite{})

func (s *urlsSuite) TestExtractURLs(c *gc.C) {
	for i, t := range []struct {
		about    string
		header   http.Header
		expected cdn.URLSet
	}{{
		about:    "no headers",
		header:   http.Header{},
		expected: cdn.URLSet{},
	}, {
		about: "all headers",
		header: http.Header{
			"X-Cdn-Ios-Uri":       {"http://ios.cdn"},
			"X-Cdn-Uri":           {"http://cdn"},
			"X-Cdn-Streaming-Uri": {"http://stream.cdn"},
			"X-Cdn-Ssl-Uri":       {"https://ssl.cdn"},
			"X-Cdn-Enabled":       {"True"},
		},
		expected: cdn.URLSet{
			IOSURI:       "http://ios.cdn",
			URI:          "http://cdn",
			StreamingURI: "http://stream.cdn",
			SSLURI:       "https://ssl.cdn",
		},
	}, {
		about: "subset",
		header: http.Header{
			"X-Cdn-Uri":     {"http://cdn"},
			"X-Cdn-Ssl-Uri": {"https://ssl.cdn"},
		},
		expected: cdn.URLSet{URI: "http://cdn", SSLURI: "https://ssl.cdn"},
	}, {
		about: "names are matched exactly",
		header: http.Header{
			"X-CDN-URI":     {"http://cdn"},
			"x-cdn-ssl-uri": {"https://ssl.cdn"},
		},
		expected: cdn.URLSet{},
	}} {
		c.Logf("test %d: %s", i, t.about)
		first := cdn.ExtractURLs(t.header)
		c.Check(first, jc.DeepEquals, t.expected)
		c.Check(cdn.ExtractURLs(t.header), jc.DeepEquals, first)
		c.Check(first.IsEmpty(), gc.Equals, t.expected == cdn.URLSet{})
	}
}

func (s *urlsSuite) TestNilHeader(c *gc.C) {
	c.Assert(cdn.ExtractURLs(nil).IsEmpty(), jc.IsTrue)
}
