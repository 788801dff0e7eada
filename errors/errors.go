// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package errors

import (
	"fmt"
	"net/http"

	"github.com/juju/errors"
)

const (
	// ConfigurationError is raised when the CDN endpoint cannot be
	// determined from the supplied configuration.
	ConfigurationError = errors.ConstError("configuration error")

	// EndpointNotFound is raised when the service catalog has no CDN
	// entry for the requested region.
	EndpointNotFound = errors.ConstError("endpoint not found")

	// NotFound is raised when the CDN management API answers 404.
	NotFound = errors.ConstError("not found")

	// UnsupportedPurgeTarget is raised when purge is asked to evict
	// something that is not an object.
	UnsupportedPurgeTarget = errors.ConstError("unsupported purge target")

	// RequestFailed is raised for any other unsuccessful HTTP status.
	RequestFailed = errors.ConstError("request failed")
)

// ResponseError describes an HTTP exchange that completed with a non-2xx
// status. It keeps the original response so callers can inspect it.
type ResponseError struct {
	Method     string
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
}

// NewResponseError returns a ResponseError for the given exchange.
func NewResponseError(method, url string, statusCode int, header http.Header, body []byte) *ResponseError {
	return &ResponseError{
		Method:     method,
		URL:        url,
		StatusCode: statusCode,
		Header:     header,
		Body:       body,
	}
}

// Error implements error.
func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s %s: %s (%d %s)",
		e.Method, e.URL, e.kind(), e.StatusCode, http.StatusText(e.StatusCode))
}

// Is lets errors.Is match NotFound for 404 responses and RequestFailed for
// everything else. A 404 also satisfies juju's errors.NotFound.
func (e *ResponseError) Is(target error) bool {
	if e.StatusCode == http.StatusNotFound && target == errors.NotFound {
		return true
	}
	return target == e.kind()
}

func (e *ResponseError) kind() errors.ConstError {
	if e.StatusCode == http.StatusNotFound {
		return NotFound
	}
	return RequestFailed
}
