// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package dispatcher

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/go-http-utils/headers"
	"github.com/juju/errors"
	jujuhttp "github.com/juju/http/v2"
	"github.com/juju/loggo/v2"

	"github.com/juju/cdn/backend"
	cdnerrors "github.com/juju/cdn/errors"
)

var logger = loggo.GetLogger("juju.cdn.dispatcher")

// AuthTokenHeader carries the session token on every request.
const AuthTokenHeader = "X-Auth-Token"

const jsonContentType = "application/json"

// HTTPClient sends a single request. Both *http.Client and
// *jujuhttp.Client satisfy it.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Params describes a single request relative to an endpoint.
type Params struct {
	Method string

	// Path is appended to the endpoint path after a "/".
	Path string

	Query  url.Values
	Header http.Header
	Body   []byte
}

// Config holds the dependencies of a Dispatcher.
type Config struct {
	Client HTTPClient
}

// Validate returns an error if the config cannot be used.
func (c Config) Validate() error {
	if c.Client == nil {
		return errors.NotValidf("nil Client")
	}
	return nil
}

// Dispatcher sends requests to the CDN management API.
type Dispatcher struct {
	client HTTPClient
}

// New returns a Dispatcher for the given config.
func New(config Config) (*Dispatcher, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &Dispatcher{client: config.Client}, nil
}

// NewHTTPClient returns a client with its own connection pool. Unless
// persistent is set, connections are closed after each request. Every
// exchange is reported to recorder when it is not nil.
func NewHTTPClient(persistent bool, recorder jujuhttp.RequestRecorder) *jujuhttp.Client {
	options := []jujuhttp.Option{
		jujuhttp.WithDisableKeepAlives(!persistent),
		jujuhttp.WithLogger(logger.Child("http")),
	}
	if recorder != nil {
		options = append(options, jujuhttp.WithRequestRecorder(recorder))
	}
	return jujuhttp.NewClient(options...)
}

// CloseIdleConnections drops any pooled connections.
func (d *Dispatcher) CloseIdleConnections() {
	switch client := d.client.(type) {
	case interface{ CloseIdleConnections() }:
		client.CloseIdleConnections()
	case interface{ Client() *http.Client }:
		client.Client().CloseIdleConnections()
	}
}

// Request sends p to the endpoint ep authenticated with token. Any
// non-2xx status is returned as a *errors.ResponseError.
func (d *Dispatcher) Request(ctx context.Context, ep *url.URL, token string, p Params) (*backend.Response, error) {
	target := RequestURL(ep, p.Path, p.Query)

	var body io.Reader
	if len(p.Body) > 0 {
		body = bytes.NewReader(p.Body)
	}
	req, err := http.NewRequestWithContext(ctx, p.Method, target, body)
	if err != nil {
		return nil, errors.Trace(err)
	}
	req.Header = MergeHeaders(token, p.Header)

	if logger.IsTraceEnabled() {
		if data, err := httputil.DumpRequestOut(req, true); err == nil {
			logger.Tracef("%s request %s", p.Method, data)
		}
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Annotatef(err, "reading response from %s %s", p.Method, target)
	}
	logger.Debugf("%s %s: %d", p.Method, target, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, cdnerrors.NewResponseError(p.Method, target, resp.StatusCode, resp.Header, raw)
	}

	result := &backend.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       raw,
	}
	if len(raw) > 0 && isJSON(resp.Header.Get(headers.ContentType)) {
		if err := json.Unmarshal(raw, &result.Decoded); err != nil {
			return nil, errors.Annotatef(err, "decoding response from %s %s", p.Method, target)
		}
	}
	return result, nil
}

// RequestURL joins path and query onto the endpoint URL.
func RequestURL(ep *url.URL, path string, query url.Values) string {
	u := *ep
	u.Path = strings.TrimSuffix(ep.Path, "/") + "/" + path
	u.RawPath = ""
	u.RawQuery = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// MergeHeaders returns the default request headers overlaid with extra.
// Values in extra replace the defaults.
func MergeHeaders(token string, extra http.Header) http.Header {
	h := http.Header{}
	h.Set(headers.ContentType, jsonContentType)
	h.Set(AuthTokenHeader, token)
	for name, values := range extra {
		h[http.CanonicalHeaderKey(name)] = append([]string(nil), values...)
	}
	return h
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == jsonContentType || strings.HasSuffix(mediaType, "+json")
}
