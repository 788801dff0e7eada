// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package mock

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/juju/cdn/backend"
	cdnerrors "github.com/juju/cdn/errors"
)

var logger = loggo.GetLogger("juju.cdn.backend.mock")

// Listing keys for each response header that is reported per container.
var listingHeaders = map[string]string{
	"X-Cdn-Uri":           "cdn_uri",
	"X-Cdn-Ssl-Uri":       "cdn_ssl_uri",
	"X-Cdn-Streaming-Uri": "cdn_streaming_uri",
	"X-Cdn-Ios-Uri":       "cdn_ios_uri",
}

// Backend simulates the CDN management API for one account of a Store.
type Backend struct {
	store   *Store
	account string
}

var _ backend.Backend = (*Backend)(nil)

// New returns a Backend operating on the named account of store.
func New(store *Store, account string) *Backend {
	return &Backend{store: store, account: account}
}

func (b *Backend) data() *Account {
	return b.store.Account(b.account)
}

// GetContainers implements backend.Backend. The decoded body matches the
// JSON listing returned by the real API.
func (b *Backend) GetContainers(_ context.Context, opts backend.ListOptions) (*backend.Response, error) {
	data := b.data()
	var listing []interface{}
	for _, name := range data.Containers() {
		if opts.Marker != "" && name <= opts.Marker {
			continue
		}
		h, ok := data.Headers(name)
		if !ok {
			continue
		}
		enabled := h.Get("X-Cdn-Enabled") == "True"
		if opts.EnabledOnly && !enabled {
			continue
		}
		listing = append(listing, listingEntry(name, enabled, h))
		if opts.Limit > 0 && len(listing) == opts.Limit {
			break
		}
	}
	if len(listing) == 0 {
		return &backend.Response{StatusCode: http.StatusNoContent, Header: http.Header{}}, nil
	}
	return &backend.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Decoded:    listing,
	}, nil
}

func listingEntry(name string, enabled bool, h http.Header) map[string]interface{} {
	entry := map[string]interface{}{
		"name":        name,
		"cdn_enabled": enabled,
	}
	for header, key := range listingHeaders {
		if v := h.Get(header); v != "" {
			entry[key] = v
		}
	}
	if ttl, err := strconv.Atoi(h.Get("X-Ttl")); err == nil {
		entry["ttl"] = float64(ttl)
	}
	if v := h.Get("X-Log-Retention"); v != "" {
		entry["log_retention"] = strings.EqualFold(v, "True")
	}
	return entry
}

// HeadContainer implements backend.Backend.
func (b *Backend) HeadContainer(_ context.Context, container string) (*backend.Response, error) {
	h, ok := b.data().Headers(container)
	if !ok {
		return nil, b.notFound(http.MethodHead, container)
	}
	return &backend.Response{StatusCode: http.StatusNoContent, Header: h}, nil
}

// PostContainer implements backend.Backend.
func (b *Backend) PostContainer(_ context.Context, container string, headers http.Header) (*backend.Response, error) {
	data := b.data()
	if err := data.Update(container, headers); errors.Is(err, errors.NotFound) {
		return nil, b.notFound(http.MethodPost, container)
	} else if err != nil {
		return nil, errors.Trace(err)
	}
	h, _ := data.Headers(container)
	return &backend.Response{StatusCode: http.StatusAccepted, Header: h}, nil
}

// PutContainer implements backend.Backend.
func (b *Backend) PutContainer(_ context.Context, container string, headers http.Header) (*backend.Response, error) {
	if container == "" {
		return nil, errors.NotValidf("empty container name")
	}
	data := b.data()
	status := http.StatusAccepted
	if data.Put(container, headers) {
		status = http.StatusCreated
	}
	logger.Tracef("account %q: put container %q", b.account, container)
	h, _ := data.Headers(container)
	return &backend.Response{StatusCode: status, Header: h}, nil
}

// DeleteObject implements backend.Backend. Purging leaves the simulated
// state untouched.
func (b *Backend) DeleteObject(_ context.Context, container, object string) (*backend.Response, error) {
	if container == "" || object == "" {
		return nil, errors.NotValidf("purge of %q in container %q", object, container)
	}
	logger.Tracef("account %q: purge %s/%s", b.account, container, object)
	return &backend.Response{StatusCode: http.StatusNoContent, Header: http.Header{}}, nil
}

// Enabled reports true; the simulation always has an endpoint.
func (b *Backend) Enabled() bool {
	return true
}

// Reload is a no-op; the simulation holds no connections.
func (b *Backend) Reload() {}

// ResetData discards the state of this backend's account only.
func (b *Backend) ResetData() {
	b.store.Reset(b.account)
}

func (b *Backend) notFound(method, container string) error {
	return cdnerrors.NewResponseError(method, "/"+container, http.StatusNotFound, http.Header{}, nil)
}
