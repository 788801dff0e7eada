// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/go-goose/goose/v5/identity"
	"github.com/juju/errors"
	jujuhttp "github.com/juju/http/v2"
	"github.com/juju/loggo/v2"

	"github.com/juju/cdn/auth"
	"github.com/juju/cdn/backend"
	"github.com/juju/cdn/config"
	"github.com/juju/cdn/dispatcher"
	"github.com/juju/cdn/endpoint"
	"github.com/juju/cdn/metrics"
)

var logger = loggo.GetLogger("juju.cdn.backend.remote")

// Config holds the dependencies of a Backend.
type Config struct {
	// Service holds the account and endpoint settings.
	Service *config.Config

	// HTTPClient is used for every request. When nil a jujuhttp client
	// honouring the persistent setting and reporting to Metrics is created.
	HTTPClient dispatcher.HTTPClient

	// Authenticator overrides the default authenticator of the protocol
	// selected by the auth URL.
	Authenticator identity.Authenticator

	Metrics *metrics.Collector
}

// Validate returns an error if the config cannot be used.
func (c Config) Validate() error {
	if c.Service == nil {
		return errors.NotValidf("nil Service")
	}
	return nil
}

// Backend talks to the CDN management API over the network.
type Backend struct {
	protocol      auth.Protocol
	credentials   *identity.Credentials
	authenticator identity.Authenticator
	resolver      *endpoint.Resolver
	dispatcher    *dispatcher.Dispatcher
	metrics       *metrics.Collector

	mu      sync.Mutex
	session *auth.Session
	enabled bool
}

var _ backend.Backend = (*Backend)(nil)

// New authenticates and resolves the management endpoint. Authentication
// errors are returned unchanged.
func New(cfg Config) (*Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	svc := cfg.Service
	protocol := auth.ProtocolForURL(svc.AuthURL())

	client := cfg.HTTPClient
	if client == nil {
		var recorder jujuhttp.RequestRecorder
		if cfg.Metrics != nil {
			recorder = cfg.Metrics
		}
		client = dispatcher.NewHTTPClient(svc.Persistent(), recorder)
	}
	authenticator := cfg.Authenticator
	if authenticator == nil {
		var err error
		if authenticator, err = auth.NewAuthenticator(protocol, client); err != nil {
			return nil, errors.Trace(err)
		}
	}
	d, err := dispatcher.New(dispatcher.Config{Client: client})
	if err != nil {
		return nil, errors.Trace(err)
	}

	b := &Backend{
		protocol:      protocol,
		credentials:   auth.NewCredentials(protocol, svc.AuthURL(), svc.Username(), svc.APIKey(), svc.Region()),
		authenticator: authenticator,
		resolver:      endpoint.NewResolver(svc.CDNURL(), svc.Region()),
		dispatcher:    d,
		metrics:       cfg.Metrics,
	}
	session, err := b.authenticate()
	if err != nil {
		return nil, err
	}
	ep, err := b.resolver.Resolve(session)
	if err != nil {
		return nil, errors.Trace(err)
	}
	logger.Debugf("using CDN endpoint %s for %q", ep.URL, svc.Username())
	b.enabled = true
	return b, nil
}

func (b *Backend) authenticate() (*auth.Session, error) {
	session, err := auth.Authenticate(b.authenticator, b.protocol, b.credentials)
	b.metrics.ObserveAuthentication(b.protocol.String())
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	b.session = session
	b.mu.Unlock()
	return session, nil
}

func (b *Backend) request(ctx context.Context, p dispatcher.Params) (*backend.Response, error) {
	b.mu.Lock()
	session := b.session
	b.mu.Unlock()
	ep, err := b.resolver.Resolve(session)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return b.dispatcher.Request(ctx, ep.URL, session.Token(), p)
}

// GetContainers implements backend.Backend.
func (b *Backend) GetContainers(ctx context.Context, opts backend.ListOptions) (*backend.Response, error) {
	query := url.Values{"format": {"json"}}
	if opts.EnabledOnly {
		query.Set("enabled_only", "true")
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Marker != "" {
		query.Set("marker", opts.Marker)
	}
	return b.request(ctx, dispatcher.Params{
		Method: http.MethodGet,
		Query:  query,
	})
}

// HeadContainer implements backend.Backend.
func (b *Backend) HeadContainer(ctx context.Context, container string) (*backend.Response, error) {
	return b.request(ctx, dispatcher.Params{
		Method: http.MethodHead,
		Path:   container,
	})
}

// PostContainer implements backend.Backend.
func (b *Backend) PostContainer(ctx context.Context, container string, headers http.Header) (*backend.Response, error) {
	return b.request(ctx, dispatcher.Params{
		Method: http.MethodPost,
		Path:   container,
		Header: headers,
	})
}

// PutContainer implements backend.Backend.
func (b *Backend) PutContainer(ctx context.Context, container string, headers http.Header) (*backend.Response, error) {
	return b.request(ctx, dispatcher.Params{
		Method: http.MethodPut,
		Path:   container,
		Header: headers,
	})
}

// DeleteObject implements backend.Backend.
func (b *Backend) DeleteObject(ctx context.Context, container, object string) (*backend.Response, error) {
	return b.request(ctx, dispatcher.Params{
		Method: http.MethodDelete,
		Path:   container + "/" + object,
	})
}

// Enabled reports whether a management endpoint was resolved.
func (b *Backend) Enabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled
}

// Reload forgets the resolved endpoint and drops pooled connections.
func (b *Backend) Reload() {
	b.resolver.Reset()
	b.dispatcher.CloseIdleConnections()
}
