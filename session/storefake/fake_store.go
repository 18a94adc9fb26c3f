// Package storefake provides an in-memory session.Store for tests.
package storefake

import (
	"sync"

	"github.com/propdesk/propdesk/session"
)

type FakeStore struct {
	mu   sync.Mutex
	data map[string]string

	SetCalls   int
	ClearCalls int
}

var _ session.Store = (*FakeStore)(nil)

func NewFakeStore() *FakeStore {
	return &FakeStore{data: map[string]string{}}
}

func (f *FakeStore) Set(accessToken, refreshToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SetCalls++
	f.data[session.KeyAccessToken] = accessToken
	f.data[session.KeyRefreshToken] = refreshToken
	return nil
}

func (f *FakeStore) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

func (f *FakeStore) SetUserAttributes(attrs session.UserAttributes) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if attrs.Username != "" {
		f.data[session.KeyUsername] = attrs.Username
	}
	if attrs.Role != "" {
		f.data[session.KeyRole] = attrs.Role
	}
	return nil
}

func (f *FakeStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ClearCalls++
	f.data = map[string]string{}
	return nil
}

// Len reports how many keys are currently stored.
func (f *FakeStore) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.data)
}
