// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cdn

import (
	"context"
	"net/http"
	"reflect"

	"github.com/go-goose/goose/v5/identity"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/juju/cdn/backend"
	"github.com/juju/cdn/backend/mock"
	"github.com/juju/cdn/backend/remote"
	"github.com/juju/cdn/config"
	"github.com/juju/cdn/dispatcher"
	cdnerrors "github.com/juju/cdn/errors"
	"github.com/juju/cdn/metrics"
)

var logger = loggo.GetLogger("juju.cdn")

// ServiceParams holds what is needed to construct a Service.
type ServiceParams struct {
	Config *config.Config

	// Store holds simulated state when the mock backend is selected. A
	// new Store is created when it is nil.
	Store *mock.Store

	// HTTPClient, Authenticator and Registerer are only used by the
	// network backend and may be nil.
	HTTPClient    dispatcher.HTTPClient
	Authenticator identity.Authenticator
	Registerer    prometheus.Registerer
}

// Service exposes the CDN operations of one account. The backend
// operations are promoted from the selected backend.
type Service struct {
	backend.Backend
	config *config.Config
}

// NewService returns a Service using the mock backend when the config
// asks for it and the network backend otherwise.
func NewService(params ServiceParams) (*Service, error) {
	if params.Config == nil {
		return nil, errors.NotValidf("nil Config")
	}
	cfg := params.Config
	if cfg.Mock() {
		store := params.Store
		if store == nil {
			store = mock.NewStore()
		}
		logger.Debugf("using simulated CDN for %q", cfg.Username())
		return newService(cfg, mock.New(store, cfg.Username())), nil
	}

	collector, err := registerMetrics(params.Registerer)
	if err != nil {
		return nil, errors.Trace(err)
	}
	b, err := remote.New(remote.Config{
		Service:       cfg,
		HTTPClient:    params.HTTPClient,
		Authenticator: params.Authenticator,
		Metrics:       collector,
	})
	if err != nil {
		return nil, err
	}
	return newService(cfg, b), nil
}

func newService(cfg *config.Config, b backend.Backend) *Service {
	return &Service{Backend: b, config: cfg}
}

func registerMetrics(registerer prometheus.Registerer) (*metrics.Collector, error) {
	if registerer == nil {
		return nil, nil
	}
	collector := metrics.NewCollector()
	err := registerer.Register(collector)
	if err == nil {
		return collector, nil
	}
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(*metrics.Collector); ok {
			return existing, nil
		}
	}
	return nil, errors.Annotate(err, "registering CDN metrics")
}

// PublishContainer enables or disables CDN distribution of container.
// Disabling always returns an empty URLSet.
func (s *Service) PublishContainer(ctx context.Context, container Container, publish bool) (URLSet, error) {
	enabled := "False"
	if publish {
		enabled = "True"
	}
	resp, err := s.PutContainer(ctx, container.Key(), http.Header{HeaderEnabled: {enabled}})
	if err != nil {
		return URLSet{}, errors.Trace(err)
	}
	if !publish {
		return URLSet{}, nil
	}
	return ExtractURLs(resp.Header), nil
}

// URLs returns the CDN URLs of container. A container that does not
// exist or is not CDN-enabled has no URLs.
func (s *Service) URLs(ctx context.Context, container Container) (URLSet, error) {
	resp, err := s.HeadContainer(ctx, container.Key())
	if errors.Is(err, cdnerrors.NotFound) {
		return URLSet{}, nil
	} else if err != nil {
		return URLSet{}, errors.Trace(err)
	}
	if headerValue(resp.Header, HeaderEnabled) != "True" {
		return URLSet{}, nil
	}
	return ExtractURLs(resp.Header), nil
}

// PublicURL returns the URL container is served from: the SSL URI when
// use-ssl is set, the plain URI otherwise. It is empty when the
// container is not published.
func (s *Service) PublicURL(ctx context.Context, container Container) (string, error) {
	urls, err := s.URLs(ctx, container)
	if err != nil {
		return "", errors.Trace(err)
	}
	if s.config.UseSSL() {
		return urls.SSLURI, nil
	}
	return urls.URI, nil
}

// Purge evicts target from the CDN edge caches. target must be a
// Purgeable with a container.
func (s *Service) Purge(ctx context.Context, target interface{}) (bool, error) {
	if isNil(target) {
		// A nil target succeeds without doing anything. Callers may rely
		// on this, but it probably should be an error.
		return true, nil
	}
	switch t := target.(type) {
	case Purgeable:
		dir := t.Directory()
		if isNil(dir) {
			break
		}
		if _, err := s.DeleteObject(ctx, dir.Key(), t.Key()); err != nil {
			return false, errors.Trace(err)
		}
		return true, nil
	}
	return false, errors.Annotatef(cdnerrors.UnsupportedPurgeTarget, "%T does not support CDN purging", target)
}

// Enabled reports whether the backend has a usable CDN endpoint.
func (s *Service) Enabled() bool {
	if e, ok := s.Backend.(backend.Enabler); ok {
		return e.Enabled()
	}
	return true
}

// Reload discards any resolved endpoint and pooled connections.
func (s *Service) Reload() {
	if r, ok := s.Backend.(backend.Reloader); ok {
		r.Reload()
	}
}

// ResetData clears simulated state. It does nothing for the network
// backend.
func (s *Service) ResetData() {
	if r, ok := s.Backend.(backend.Resetter); ok {
		r.ResetData()
	}
}

// isNil reports whether v is nil or a nil pointer held in an interface.
func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
