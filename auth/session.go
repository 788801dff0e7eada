// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package auth

import (
	"strings"

	"github.com/go-goose/goose/v5/identity"
)

// Session is the outcome of a successful authentication.
type Session struct {
	protocol Protocol
	details  *identity.AuthDetails
}

// NewSession returns a Session for already obtained auth details.
func NewSession(p Protocol, details *identity.AuthDetails) *Session {
	return &Session{protocol: p, details: details}
}

// Protocol returns the protocol the session was obtained with.
func (s *Session) Protocol() Protocol {
	return s.protocol
}

// Token returns the auth token sent with every request.
func (s *Session) Token() string {
	return s.details.Token
}

// ManagementURL returns the CDN management URL carried by a legacy
// credential response, or "" for any other protocol.
func (s *Session) ManagementURL() string {
	if s.protocol != Legacy {
		return ""
	}
	for _, urls := range s.details.RegionServiceURLs {
		if u := urls[CDNServiceType]; u != "" {
			return u
		}
	}
	return ""
}

// EndpointsForRegion returns the catalog entries of region. Region names
// are matched without regard to case.
func (s *Session) EndpointsForRegion(region string) identity.ServiceURLs {
	if urls, ok := s.details.RegionServiceURLs[region]; ok {
		return urls
	}
	for name, urls := range s.details.RegionServiceURLs {
		if strings.EqualFold(name, region) {
			return urls
		}
	}
	return nil
}
