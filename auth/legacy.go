// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package auth

import (
	"net/http"

	gooseerrors "github.com/go-goose/goose/v5/errors"
	"github.com/go-goose/goose/v5/identity"
	"github.com/juju/errors"
)

// legacyServiceHeaders maps service types to the legacy response headers
// carrying their endpoints.
var legacyServiceHeaders = map[string]string{
	"object-store": "X-Storage-Url",
	"compute":      "X-Server-Management-Url",
	CDNServiceType: "X-Cdn-Management-Url",
}

// legacyAuthenticator speaks the single-region protocol. goose's own
// legacy authenticator drops the CDN management header.
type legacyAuthenticator struct {
	client HTTPClient
}

// Auth implements identity.Authenticator.
func (a *legacyAuthenticator) Auth(creds *identity.Credentials) (*identity.AuthDetails, error) {
	req, err := http.NewRequest(http.MethodGet, creds.URL, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	req.Header.Set("X-Auth-User", creds.User)
	req.Header.Set("X-Auth-Key", creds.Secrets)
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, errors.Annotatef(err, "authenticating with %s", creds.URL)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
	case http.StatusUnauthorized:
		return nil, gooseerrors.NewUnauthorisedf(nil, "", "invalid credentials for user %q", creds.User)
	default:
		return nil, errors.Errorf("authenticating with %s: %d %s",
			creds.URL, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	token := resp.Header.Get("X-Auth-Token")
	if token == "" {
		return nil, errors.Errorf("authenticating with %s: no token returned", creds.URL)
	}
	urls := make(identity.ServiceURLs)
	for serviceType, header := range legacyServiceHeaders {
		if v := resp.Header.Get(header); v != "" {
			urls[serviceType] = v
		}
	}
	return &identity.AuthDetails{
		Token:             token,
		RegionServiceURLs: map[string]identity.ServiceURLs{creds.Region: urls},
	}, nil
}
