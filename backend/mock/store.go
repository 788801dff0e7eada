// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package mock

import (
	"net/http"
	"sync"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
)

// Store holds simulated CDN state for any number of accounts. Accounts
// are created on first use and live until reset.
type Store struct {
	mu       sync.Mutex
	accounts map[string]*Account
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{accounts: make(map[string]*Account)}
}

// Account returns the state of the named account, creating it if needed.
func (s *Store) Account(name string) *Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[name]
	if !ok {
		account = &Account{containers: make(map[string]http.Header)}
		s.accounts[name] = account
	}
	return account
}

// Reset discards the state of the named account. Other accounts are
// left alone.
func (s *Store) Reset(name string) {
	s.mu.Lock()
	delete(s.accounts, name)
	s.mu.Unlock()
}

// ResetAll discards the state of every account.
func (s *Store) ResetAll() {
	s.mu.Lock()
	s.accounts = make(map[string]*Account)
	s.mu.Unlock()
}

// Accounts returns the sorted names of the accounts holding state.
func (s *Store) Accounts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := set.NewStrings()
	for name := range s.accounts {
		names.Add(name)
	}
	return names.SortedValues()
}

// Account maps container names to their CDN headers.
type Account struct {
	mu         sync.Mutex
	containers map[string]http.Header
}

// Containers returns the sorted container names.
func (a *Account) Containers() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	names := set.NewStrings()
	for name := range a.containers {
		names.Add(name)
	}
	return names.SortedValues()
}

// Headers returns a copy of the headers of container, and whether it
// exists.
func (a *Account) Headers(container string) (http.Header, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	h, ok := a.containers[container]
	if !ok {
		return nil, false
	}
	return h.Clone(), true
}

// Put creates container if needed and merges h into its headers. It
// reports whether the container was created.
func (a *Account) Put(container string, h http.Header) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	existing, ok := a.containers[container]
	if !ok {
		existing = make(http.Header)
		a.containers[container] = existing
	}
	merge(existing, h)
	return !ok
}

// Update merges h into the headers of an existing container.
func (a *Account) Update(container string, h http.Header) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	existing, ok := a.containers[container]
	if !ok {
		return errors.NotFoundf("container %q", container)
	}
	merge(existing, h)
	return nil
}

// Delete removes container.
func (a *Account) Delete(container string) {
	a.mu.Lock()
	delete(a.containers, container)
	a.mu.Unlock()
}

func merge(dst, src http.Header) {
	for name, values := range src {
		dst[http.CanonicalHeaderKey(name)] = append([]string(nil), values...)
	}
}
