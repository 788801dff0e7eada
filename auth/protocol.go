// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package auth

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-goose/goose/v5/identity"
	"github.com/juju/errors"
	jujuhttp "github.com/juju/http/v2"
	"github.com/juju/loggo/v2"
)

var logger = loggo.GetLogger("juju.cdn.auth")

// Protocol identifies the identity protocol used to obtain a token.
type Protocol int

const (
	// Legacy is the single-region protocol. The credential response
	// carries the CDN management URL directly and there is no service
	// catalog.
	Legacy Protocol = iota

	// Keystone is the catalog based protocol. The CDN management URL is
	// looked up per region after authenticating.
	Keystone
)

// CDNServiceType is the catalog service type of the CDN management API.
const CDNServiceType = "rax:object-cdn"

// DefaultAuthURL holds the identity endpoint used for each protocol when
// none is configured.
var DefaultAuthURL = map[Protocol]string{
	Legacy:   "https://auth.api.rackspacecloud.com/v1.0",
	Keystone: "https://identity.api.rackspacecloud.com/v2.0",
}

func (p Protocol) String() string {
	switch p {
	case Legacy:
		return "legacy"
	case Keystone:
		return "keystone"
	}
	return "unknown"
}

// AuthMode returns the goose authentication mode matching p.
func (p Protocol) AuthMode() identity.AuthMode {
	if p == Legacy {
		return identity.AuthLegacy
	}
	return identity.AuthUserPass
}

// ProtocolForURL returns the protocol spoken by the identity endpoint at
// authURL. An empty URL selects Keystone.
func ProtocolForURL(authURL string) Protocol {
	if authURL == "" {
		return Keystone
	}
	u, err := url.Parse(authURL)
	if err != nil {
		return Keystone
	}
	if strings.Contains(u.Path, "v1.0") {
		return Legacy
	}
	return Keystone
}

// HTTPClient sends a single request.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// authenticators maps each protocol to the constructor of its default
// authenticator. Adding a protocol means adding an entry here.
var authenticators = map[Protocol]func(HTTPClient) identity.Authenticator{
	Legacy: func(client HTTPClient) identity.Authenticator {
		return &legacyAuthenticator{client: client}
	},
	// goose manages its own HTTP client for catalog based auth.
	Keystone: func(HTTPClient) identity.Authenticator {
		return identity.NewAuthenticator(identity.AuthUserPass, nil)
	},
}

// NewAuthenticator returns the default authenticator for p. A nil client
// is replaced by a new jujuhttp.Client.
func NewAuthenticator(p Protocol, client HTTPClient) (identity.Authenticator, error) {
	newAuthenticator, ok := authenticators[p]
	if !ok {
		return nil, errors.NotSupportedf("authentication protocol %v", p)
	}
	if client == nil {
		client = jujuhttp.NewClient(jujuhttp.WithLogger(logger.Child("http")))
	}
	return newAuthenticator(client), nil
}

// tokensPath is the Keystone resource that issues tokens.
const tokensPath = "/tokens"

// NewCredentials returns goose credentials for an account. An empty
// authURL is replaced by the default endpoint of p. Keystone credentials
// address the tokens resource below the auth URL.
func NewCredentials(p Protocol, authURL, username, apiKey, region string) *identity.Credentials {
	if authURL == "" {
		authURL = DefaultAuthURL[p]
	}
	if p == Keystone && !strings.HasSuffix(authURL, tokensPath) {
		authURL = strings.TrimSuffix(authURL, "/") + tokensPath
	}
	return &identity.Credentials{
		URL:     authURL,
		User:    username,
		Secrets: apiKey,
		Region:  region,
	}
}

// Authenticate exchanges creds for a Session. Errors from the
// authenticator are returned as they are.
func Authenticate(a identity.Authenticator, p Protocol, creds *identity.Credentials) (*Session, error) {
	details, err := a.Auth(creds)
	if err != nil {
		return nil, err
	}
	logger.Debugf("authenticated %q using %v protocol", creds.User, p)
	return &Session{protocol: p, details: details}, nil
}
