// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package backend

import (
	"context"
	"net/http"
)

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/backend_mock.go github.com/juju/cdn/backend Backend

// Response is the outcome of a single CDN management call.
type Response struct {
	StatusCode int
	Header     http.Header

	// Body holds the raw response body.
	Body []byte

	// Decoded holds the JSON-decoded body. It is nil unless the body was
	// non-empty and declared a JSON content type.
	Decoded interface{}
}

// ListOptions narrows a container listing.
type ListOptions struct {
	// EnabledOnly restricts the listing to CDN-enabled containers.
	EnabledOnly bool

	// Limit caps the number of containers returned when positive.
	Limit int

	// Marker lists only containers sorting after this name.
	Marker string
}

// Backend is the CDN management operation set. It is satisfied both by a
// network client and by an in-memory simulation.
type Backend interface {
	// GetContainers lists CDN containers.
	GetContainers(ctx context.Context, opts ListOptions) (*Response, error)

	// HeadContainer returns the CDN headers of a container.
	HeadContainer(ctx context.Context, container string) (*Response, error)

	// PostContainer updates the CDN metadata of an existing container.
	PostContainer(ctx context.Context, container string, headers http.Header) (*Response, error)

	// PutContainer creates or enables a container with the given CDN
	// headers.
	PutContainer(ctx context.Context, container string, headers http.Header) (*Response, error)

	// DeleteObject purges one object from the CDN edge caches.
	DeleteObject(ctx context.Context, container, object string) (*Response, error)
}

// Enabler is implemented by backends that know whether they have a
// usable CDN endpoint.
type Enabler interface {
	Enabled() bool
}

// Reloader is implemented by backends holding resolved endpoints or
// network sessions that can be discarded.
type Reloader interface {
	Reload()
}

// Resetter is implemented by backends whose simulated state can be
// cleared.
type Resetter interface {
	ResetData()
}
