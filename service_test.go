// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cdn_test

import (
	"context"
	"net/http"

	"github.com/go-goose/goose/v5/identity"
	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/mock/gomock"
	gc "gopkg.in/check.v1"

	"github.com/juju/cdn"
	"github.com/juju/cdn/auth"
	"github.com/juju/cdn/backend"
	"github.com/juju/cdn/backend/mock"
	"github.com/juju/cdn/backend/mocks"
	"github.com/juju/cdn/config"
	cdnerrors "github.com/juju/cdn/errors"
)

func newConfig(c *gc.C, extra map[string]interface{}) *config.Config {
	attrs := map[string]interface{}{
		"api-key":  "k",
		"username": "u",
		"cdn-url":  "https://cdn.example/v1",
	}
	for k, v := range extra {
		attrs[k] = v
	}
	cfg, err := config.New(attrs)
	c.Assert(err, jc.ErrorIsNil)
	return cfg
}

type serviceSuite struct {
	testing.IsolationSuite

	backend *mocks.MockBackend
	service *cdn.Service
}

var _ = gc.Suite(&serviceSuite{})

func (s *serviceSuite) setupMocks(c *gc.C) *gomock.Controller {
	ctrl := gomock.NewController(c)
	s.backend = mocks.NewMockBackend(ctrl)
	s.service = cdn.NewServiceWithBackend(newConfig(c, nil), s.backend)
	return ctrl
}

var allURLHeaders = http.Header{
	"X-Cdn-Ios-Uri":       {"http://ios.cdn"},
	"X-Cdn-Uri":           {"http://cdn"},
	"X-Cdn-Streaming-Uri": {"http://stream.cdn"},
	"X-Cdn-Ssl-Uri":       {"https://ssl.cdn"},
}

func (s *serviceSuite) TestPublishContainer(c *gc.C) {
	defer s.setupMocks(c).Finish()

	s.backend.EXPECT().PutContainer(gomock.Any(), "photos", http.Header{"X-Cdn-Enabled": {"True"}}).
		Return(&backend.Response{StatusCode: http.StatusCreated, Header: http.Header{
			"X-Cdn-Uri":     {"http://cdn"},
			"X-Cdn-Ssl-Uri": {"https://ssl.cdn"},
		}}, nil)

	urls, err := s.service.PublishContainer(context.Background(), cdn.ContainerName("photos"), true)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(urls, jc.DeepEquals, cdn.URLSet{URI: "http://cdn", SSLURI: "https://ssl.cdn"})
}

func (s *serviceSuite) TestUnpublishContainerHasNoURLs(c *gc.C) {
	defer s.setupMocks(c).Finish()

	s.backend.EXPECT().PutContainer(gomock.Any(), "photos", http.Header{"X-Cdn-Enabled": {"False"}}).
		Return(&backend.Response{StatusCode: http.StatusAccepted, Header: allURLHeaders}, nil)

	urls, err := s.service.PublishContainer(context.Background(), cdn.ContainerName("photos"), false)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(urls.IsEmpty(), jc.IsTrue)
}

func (s *serviceSuite) TestPublishContainerError(c *gc.C) {
	defer s.setupMocks(c).Finish()

	failure := cdnerrors.NewResponseError("PUT", "https://cdn.example/v1/photos", http.StatusForbidden, nil, nil)
	s.backend.EXPECT().PutContainer(gomock.Any(), "photos", gomock.Any()).Return(nil, failure)

	_, err := s.service.PublishContainer(context.Background(), cdn.ContainerName("photos"), true)
	c.Assert(err, jc.ErrorIs, cdnerrors.RequestFailed)
}

func (s *serviceSuite) TestURLs(c *gc.C) {
	defer s.setupMocks(c).Finish()

	header := allURLHeaders.Clone()
	header.Set("X-Cdn-Enabled", "True")
	s.backend.EXPECT().HeadContainer(gomock.Any(), "photos").
		Return(&backend.Response{StatusCode: http.StatusNoContent, Header: header}, nil)

	urls, err := s.service.URLs(context.Background(), cdn.ContainerName("photos"))
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(urls, jc.DeepEquals, cdn.URLSet{
		IOSURI:       "http://ios.cdn",
		URI:          "http://cdn",
		StreamingURI: "http://stream.cdn",
		SSLURI:       "https://ssl.cdn",
	})
}

func (s *serviceSuite) TestURLsDisabled(c *gc.C) {
	defer s.setupMocks(c).Finish()

	for _, enabled := range []string{"False", "true", "TRUE", ""} {
		header := allURLHeaders.Clone()
		if enabled != "" {
			header["X-Cdn-Enabled"] = []string{enabled}
		}
		s.backend.EXPECT().HeadContainer(gomock.Any(), "photos").
			Return(&backend.Response{StatusCode: http.StatusNoContent, Header: header}, nil)

		urls, err := s.service.URLs(context.Background(), cdn.ContainerName("photos"))
		c.Assert(err, jc.ErrorIsNil)
		c.Check(urls.IsEmpty(), jc.IsTrue, gc.Commentf("X-Cdn-Enabled %q", enabled))
	}
}

func (s *serviceSuite) TestURLsMissingContainer(c *gc.C) {
	defer s.setupMocks(c).Finish()

	notFound := cdnerrors.NewResponseError("HEAD", "https://cdn.example/v1/photos", http.StatusNotFound, nil, nil)
	s.backend.EXPECT().HeadContainer(gomock.Any(), "photos").Return(nil, errors.Trace(notFound))

	urls, err := s.service.URLs(context.Background(), cdn.ContainerName("photos"))
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(urls.IsEmpty(), jc.IsTrue)
}

func (s *serviceSuite) TestURLsOtherErrorPropagates(c *gc.C) {
	defer s.setupMocks(c).Finish()

	failure := cdnerrors.NewResponseError("HEAD", "https://cdn.example/v1/photos", http.StatusServiceUnavailable, nil, nil)
	s.backend.EXPECT().HeadContainer(gomock.Any(), "photos").Return(nil, failure)

	_, err := s.service.URLs(context.Background(), cdn.ContainerName("photos"))
	c.Assert(err, jc.ErrorIs, cdnerrors.RequestFailed)
}

func (s *serviceSuite) TestPurgeObject(c *gc.C) {
	defer s.setupMocks(c).Finish()

	s.backend.EXPECT().DeleteObject(gomock.Any(), "photos", "cat.png").
		Return(&backend.Response{StatusCode: http.StatusNoContent}, nil).Times(1)

	ok, err := s.service.Purge(context.Background(), cdn.ObjectRef{Container: "photos", Name: "cat.png"})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(ok, jc.IsTrue)
}

func (s *serviceSuite) TestPurgeNil(c *gc.C) {
	defer s.setupMocks(c).Finish()

	ok, err := s.service.Purge(context.Background(), nil)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(ok, jc.IsTrue)
}

func (s *serviceSuite) TestPurgeNilPointer(c *gc.C) {
	defer s.setupMocks(c).Finish()

	// No DeleteObject call is expected.
	ok, err := s.service.Purge(context.Background(), (*cdn.ObjectRef)(nil))
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(ok, jc.IsTrue)
}

type bareObject struct{}

func (bareObject) Key() string { return "cat.png" }

type orphanObject struct{}

func (orphanObject) Key() string              { return "cat.png" }
func (orphanObject) Directory() cdn.Container { return nil }

type nilDirectoryObject struct{}

func (nilDirectoryObject) Key() string              { return "cat.png" }
func (nilDirectoryObject) Directory() cdn.Container { return (*cdn.ContainerName)(nil) }

func (s *serviceSuite) TestPurgeUnsupported(c *gc.C) {
	defer s.setupMocks(c).Finish()

	for _, target := range []interface{}{bareObject{}, orphanObject{}, nilDirectoryObject{}, cdn.ContainerName("photos"), 42} {
		ok, err := s.service.Purge(context.Background(), target)
		c.Check(err, jc.ErrorIs, cdnerrors.UnsupportedPurgeTarget)
		c.Check(ok, jc.IsFalse)
	}
	_, err := s.service.Purge(context.Background(), bareObject{})
	c.Assert(err, gc.ErrorMatches, "cdn_test.bareObject does not support CDN purging: unsupported purge target")
}

func (s *serviceSuite) TestPurgeError(c *gc.C) {
	defer s.setupMocks(c).Finish()

	failure := cdnerrors.NewResponseError("DELETE", "https://cdn.example/v1/photos/cat.png", http.StatusNotFound, nil, nil)
	s.backend.EXPECT().DeleteObject(gomock.Any(), "photos", "cat.png").Return(nil, failure)

	ok, err := s.service.Purge(context.Background(), cdn.ObjectRef{Container: "photos", Name: "cat.png"})
	c.Assert(err, jc.ErrorIs, cdnerrors.NotFound)
	c.Assert(ok, jc.IsFalse)
}

func (s *serviceSuite) TestPublicURL(c *gc.C) {
	defer s.setupMocks(c).Finish()

	header := allURLHeaders.Clone()
	header.Set("X-Cdn-Enabled", "True")
	s.backend.EXPECT().HeadContainer(gomock.Any(), "photos").
		Return(&backend.Response{StatusCode: http.StatusNoContent, Header: header}, nil).Times(2)

	u, err := s.service.PublicURL(context.Background(), cdn.ContainerName("photos"))
	c.Assert(err, jc.ErrorIsNil)
	c.Check(u, gc.Equals, "https://ssl.cdn")

	plain := cdn.NewServiceWithBackend(newConfig(c, map[string]interface{}{"use-ssl": false}), s.backend)
	u, err = plain.PublicURL(context.Background(), cdn.ContainerName("photos"))
	c.Assert(err, jc.ErrorIsNil)
	c.Check(u, gc.Equals, "http://cdn")
}

func (s *serviceSuite) TestCapabilitiesDefault(c *gc.C) {
	defer s.setupMocks(c).Finish()

	// The gomock double implements none of the optional capabilities.
	c.Assert(s.service.Enabled(), jc.IsTrue)
	s.service.Reload()
	s.service.ResetData()
}

type mockServiceSuite struct {
	testing.IsolationSuite

	store *mock.Store
}

var _ = gc.Suite(&mockServiceSuite{})

func (s *mockServiceSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	s.store = mock.NewStore()
}

func (s *mockServiceSuite) newService(c *gc.C, username string) *cdn.Service {
	svc, err := cdn.NewService(cdn.ServiceParams{
		Config: newConfig(c, map[string]interface{}{"mock": true, "username": username}),
		Store:  s.store,
	})
	c.Assert(err, jc.ErrorIsNil)
	return svc
}

func (s *mockServiceSuite) TestNilConfig(c *gc.C) {
	_, err := cdn.NewService(cdn.ServiceParams{})
	c.Assert(err, jc.ErrorIs, errors.NotValid)
}

func (s *mockServiceSuite) TestPutThenHead(c *gc.C) {
	ctx := context.Background()
	svc := s.newService(c, "u")
	c.Assert(svc.Enabled(), jc.IsTrue)

	_, err := svc.PutContainer(ctx, "mycontainer", http.Header{"X-Cdn-Enabled": {"True"}})
	c.Assert(err, jc.ErrorIsNil)
	resp, err := svc.HeadContainer(ctx, "mycontainer")
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(resp.Header["X-Cdn-Enabled"], jc.DeepEquals, []string{"True"})

	// No URI headers were stored.
	urls, err := svc.URLs(ctx, cdn.ContainerName("mycontainer"))
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(urls.IsEmpty(), jc.IsTrue)

	_, err = svc.PostContainer(ctx, "mycontainer", http.Header{"X-Cdn-Uri": {"http://cdn"}})
	c.Assert(err, jc.ErrorIsNil)
	urls, err = svc.URLs(ctx, cdn.ContainerName("mycontainer"))
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(urls, jc.DeepEquals, cdn.URLSet{URI: "http://cdn"})
}

func (s *mockServiceSuite) TestPublishAndUnpublish(c *gc.C) {
	ctx := context.Background()
	svc := s.newService(c, "u")
	s.store.Account("u").Put("photos", allURLHeaders)

	urls, err := svc.PublishContainer(ctx, cdn.ContainerName("photos"), true)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(urls.URI, gc.Equals, "http://cdn")

	urls, err = svc.PublishContainer(ctx, cdn.ContainerName("photos"), false)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(urls.IsEmpty(), jc.IsTrue)

	urls, err = svc.URLs(ctx, cdn.ContainerName("photos"))
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(urls.IsEmpty(), jc.IsTrue)
}

func (s *mockServiceSuite) TestURLsMissingContainer(c *gc.C) {
	urls, err := s.newService(c, "u").URLs(context.Background(), cdn.ContainerName("missing"))
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(urls.IsEmpty(), jc.IsTrue)
}

func (s *mockServiceSuite) TestPurge(c *gc.C) {
	ctx := context.Background()
	svc := s.newService(c, "u")
	ok, err := svc.Purge(ctx, cdn.ObjectRef{Container: "photos", Name: "cat.png"})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(ok, jc.IsTrue)

	_, err = svc.Purge(ctx, "photos/cat.png")
	c.Assert(err, jc.ErrorIs, cdnerrors.UnsupportedPurgeTarget)
}

func (s *mockServiceSuite) TestResetDataIsolation(c *gc.C) {
	ctx := context.Background()
	alice := s.newService(c, "alice")
	bob := s.newService(c, "bob")
	_, err := alice.PutContainer(ctx, "photos", http.Header{"X-Cdn-Enabled": {"True"}})
	c.Assert(err, jc.ErrorIsNil)
	_, err = bob.PutContainer(ctx, "videos", http.Header{"X-Cdn-Enabled": {"True"}})
	c.Assert(err, jc.ErrorIsNil)

	alice.ResetData()
	_, err = alice.HeadContainer(ctx, "photos")
	c.Assert(err, jc.ErrorIs, cdnerrors.NotFound)
	_, err = bob.HeadContainer(ctx, "videos")
	c.Assert(err, jc.ErrorIsNil)
}

type fakeAuthenticator struct {
	err error
}

func (a fakeAuthenticator) Auth(*identity.Credentials) (*identity.AuthDetails, error) {
	if a.err != nil {
		return nil, a.err
	}
	return &identity.AuthDetails{
		Token: "tok",
		RegionServiceURLs: map[string]identity.ServiceURLs{
			"DFW": {auth.CDNServiceType: "https://cdn.example/v1/acct"},
		},
	}, nil
}

type remoteServiceSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&remoteServiceSuite{})

func (s *remoteServiceSuite) TestAuthenticationErrorUnchanged(c *gc.C) {
	authErr := errors.New("denied")
	_, err := cdn.NewService(cdn.ServiceParams{
		Config:        newConfig(c, nil),
		Authenticator: fakeAuthenticator{err: authErr},
	})
	c.Assert(err, gc.Equals, authErr)
}

func (s *remoteServiceSuite) TestRegistersMetrics(c *gc.C) {
	registry := prometheus.NewPedanticRegistry()
	params := cdn.ServiceParams{
		Config:        newConfig(c, map[string]interface{}{"cdn-url": ""}),
		Authenticator: fakeAuthenticator{},
		Registerer:    registry,
	}
	svc, err := cdn.NewService(params)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(svc.Enabled(), jc.IsTrue)

	// A second service shares the registered collector.
	_, err = cdn.NewService(params)
	c.Assert(err, jc.ErrorIsNil)

	families, err := registry.Gather()
	c.Assert(err, jc.ErrorIsNil)
	var names []string
	for _, family := range families {
		names = append(names, family.GetName())
	}
	c.Assert(names, jc.DeepEquals, []string{"juju_cdn_authentications_total"})
}
