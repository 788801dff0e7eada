// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package cdnservice provides an HTTP double of the CDN management API and
// its identity endpoints, backed by a mock.Store.
package cdnservice

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-http-utils/headers"
	"github.com/gorilla/mux"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/juju/cdn/auth"
	"github.com/juju/cdn/backend"
	"github.com/juju/cdn/backend/mock"
	cdnerrors "github.com/juju/cdn/errors"
)

var logger = loggo.GetLogger("juju.cdn.testservices.cdnservice")

const (
	// AuthPath is the path of the legacy identity endpoint.
	AuthPath = "/v1.0"

	// KeystonePath is the path of the catalog based identity endpoint.
	// Tokens are issued below it.
	KeystonePath = "/v2.0"

	// Region is the only region listed in the service catalog.
	Region = "DFW"
)

// Service serves one account of a mock.Store over HTTP.
type Service struct {
	username string
	apiKey   string
	token    string
	backend  *mock.Backend
	router   *mux.Router

	mu     sync.Mutex
	purges []string
}

// New returns a Service accepting the given credentials. State is kept
// in the username's account of store.
func New(username, apiKey string, store *mock.Store) *Service {
	s := &Service{
		username: username,
		apiKey:   apiKey,
		token:    "token-" + username,
		backend:  mock.New(store, username),
	}
	r := mux.NewRouter()
	r.HandleFunc(AuthPath, s.handleAuth).Methods(http.MethodGet)
	r.HandleFunc(KeystonePath+"/tokens", s.handleTokens).Methods(http.MethodPost)

	api := r.PathPrefix("/v1/{account}").Subrouter()
	api.Use(s.checkToken)
	api.HandleFunc("/", s.handleList).Methods(http.MethodGet)
	api.HandleFunc("/{container}", s.handleHead).Methods(http.MethodHead)
	api.HandleFunc("/{container}", s.handleUpdate).Methods(http.MethodPost, http.MethodPut)
	api.HandleFunc("/{container}/{object:.+}", s.handlePurge).Methods(http.MethodDelete)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Token returns the token issued to authenticated clients.
func (s *Service) Token() string {
	return s.token
}

// Purges returns the "container/object" paths purged so far.
func (s *Service) Purges() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.purges...)
}

func (s *Service) handleAuth(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("X-Auth-User") != s.username || r.Header.Get("X-Auth-Key") != s.apiKey {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	base := s.accountURL(r)
	w.Header().Set("X-Auth-Token", s.token)
	w.Header().Set("X-Storage-Url", base)
	w.Header().Set("X-Cdn-Management-Url", base)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) accountURL(r *http.Request) string {
	return fmt.Sprintf("http://%s/v1/%s", r.Host, s.username)
}

type passwordCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokensRequest struct {
	Auth struct {
		PasswordCredentials passwordCredentials `json:"passwordCredentials"`
	} `json:"auth"`
}

type catalogEndpoint struct {
	Region    string `json:"region"`
	PublicURL string `json:"publicURL"`
}

type catalogService struct {
	Name      string            `json:"name"`
	Type      string            `json:"type"`
	Endpoints []catalogEndpoint `json:"endpoints"`
}

type tokensResponse struct {
	Access struct {
		Token struct {
			ID      string `json:"id"`
			Expires string `json:"expires"`
		} `json:"token"`
		ServiceCatalog []catalogService `json:"serviceCatalog"`
		User           struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"user"`
	} `json:"access"`
}

func (s *Service) handleTokens(w http.ResponseWriter, r *http.Request) {
	var req tokensRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	creds := req.Auth.PasswordCredentials
	if creds.Username != s.username || creds.Password != s.apiKey {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	var resp tokensResponse
	resp.Access.Token.ID = s.token
	resp.Access.Token.Expires = "2099-01-01T00:00:00.000Z"
	resp.Access.User.ID = s.username
	resp.Access.User.Name = s.username
	resp.Access.ServiceCatalog = []catalogService{{
		Name:      "cloudFiles",
		Type:      "object-store",
		Endpoints: []catalogEndpoint{{Region: Region, PublicURL: s.accountURL(r)}},
	}, {
		Name:      "cloudFilesCDN",
		Type:      auth.CDNServiceType,
		Endpoints: []catalogEndpoint{{Region: Region, PublicURL: s.accountURL(r)}},
	}}
	w.Header().Set(headers.ContentType, "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Errorf("encoding token response: %v", err)
	}
}

func (s *Service) checkToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Auth-Token") != s.token {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		if mux.Vars(r)["account"] != s.username {
			http.Error(w, "unknown account", http.StatusNotFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Service) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	opts := backend.ListOptions{
		EnabledOnly: query.Get("enabled_only") == "true",
		Marker:      query.Get("marker"),
	}
	if limit := query.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		opts.Limit = n
	}
	resp, err := s.backend.GetContainers(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	if resp.Decoded == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set(headers.ContentType, "application/json; charset=utf-8")
	w.WriteHeader(resp.StatusCode)
	if err := json.NewEncoder(w).Encode(resp.Decoded); err != nil {
		logger.Errorf("encoding container listing: %v", err)
	}
}

func (s *Service) handleHead(w http.ResponseWriter, r *http.Request) {
	resp, err := s.backend.HeadContainer(r.Context(), mux.Vars(r)["container"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeResponse(w, resp)
}

func (s *Service) handleUpdate(w http.ResponseWriter, r *http.Request) {
	container := mux.Vars(r)["container"]
	update := cdnHeaders(r.Header)
	var (
		resp *backend.Response
		err  error
	)
	if r.Method == http.MethodPut {
		resp, err = s.backend.PutContainer(r.Context(), container, update)
	} else {
		resp, err = s.backend.PostContainer(r.Context(), container, update)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeResponse(w, resp)
}

func (s *Service) handlePurge(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resp, err := s.backend.DeleteObject(r.Context(), vars["container"], vars["object"])
	if err != nil {
		writeError(w, err)
		return
	}
	s.mu.Lock()
	s.purges = append(s.purges, vars["container"]+"/"+vars["object"])
	s.mu.Unlock()
	writeResponse(w, resp)
}

// cdnHeaders returns the headers of r that are stored as container
// metadata.
func cdnHeaders(h http.Header) http.Header {
	result := make(http.Header)
	for name, values := range h {
		switch name {
		case "X-Auth-Token", "Connection", headers.ContentType, headers.ContentLength,
			headers.UserAgent, headers.AcceptEncoding:
			continue
		}
		result[name] = values
	}
	return result
}

func writeResponse(w http.ResponseWriter, resp *backend.Response) {
	for name, values := range resp.Header {
		w.Header()[name] = values
	}
	w.WriteHeader(resp.StatusCode)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cdnerrors.NotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, errors.NotValid):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
