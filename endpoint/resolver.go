// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package endpoint

import (
	"net/url"
	"sync"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/juju/cdn/auth"
	cdnerrors "github.com/juju/cdn/errors"
)

var logger = loggo.GetLogger("juju.cdn.endpoint")

// Endpoint is a resolved CDN management base URL.
type Endpoint struct {
	URL    *url.URL
	Region string
}

// Resolver determines the CDN management endpoint for a session and
// remembers it until Reset is called.
type Resolver struct {
	cdnURL string
	region string

	mu     sync.Mutex
	cached *Endpoint
}

// NewResolver returns a Resolver. A non-empty cdnURL is used verbatim;
// otherwise the endpoint comes from the session.
func NewResolver(cdnURL, region string) *Resolver {
	return &Resolver{cdnURL: cdnURL, region: region}
}

// Resolve returns the management endpoint, resolving it on first use.
func (r *Resolver) Resolve(session *auth.Session) (*Endpoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cached != nil {
		return r.cached, nil
	}

	rawURL, err := r.lookup(session)
	if err != nil {
		return nil, errors.Trace(err)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Annotatef(err, "parsing CDN endpoint %q", rawURL)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.NotValidf("CDN endpoint %q", rawURL)
	}
	logger.Debugf("resolved CDN endpoint %s for region %q", u, r.region)
	r.cached = &Endpoint{URL: u, Region: r.region}
	return r.cached, nil
}

func (r *Resolver) lookup(session *auth.Session) (string, error) {
	if r.cdnURL != "" {
		return r.cdnURL, nil
	}
	if u := session.ManagementURL(); u != "" {
		return u, nil
	}
	// The legacy protocol has no catalog to fall back on.
	if session.Protocol() == auth.Legacy {
		return "", errors.Annotate(cdnerrors.ConfigurationError, "service endpoint must be specified via cdn-url")
	}
	u := session.EndpointsForRegion(r.region)[auth.CDNServiceType]
	if u == "" {
		return "", errors.Annotatef(cdnerrors.EndpointNotFound, "no %q service in region %q", auth.CDNServiceType, r.region)
	}
	return u, nil
}

// Reset forgets the resolved endpoint.
func (r *Resolver) Reset() {
	r.mu.Lock()
	r.cached = nil
	r.mu.Unlock()
}
