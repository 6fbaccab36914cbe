package usersvc

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abcall/clients/internal/core/facade"
	"github.com/abcall/clients/internal/infrastructure/logging"
)

type memoryStore struct {
	mu      sync.Mutex
	values  map[string]string
	ttls    map[string]time.Duration
	failGet bool
	failSet bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (s *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet {
		return "", false, errors.New("cache unavailable")
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *memoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return errors.New("cache unavailable")
	}
	s.values[key] = value
	s.ttls[key] = ttl
	return nil
}

type countingFacade struct {
	users map[string]*facade.UserRecord
	err   error
	calls int
}

func (f *countingFacade) GetUser(_ context.Context, subject string) (*facade.UserRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.users[subject], nil
}

func TestCachedFacadeReadsThrough(t *testing.T) {
	store := newMemoryStore()
	next := &countingFacade{users: map[string]*facade.UserRecord{
		"u1": {Subject: "u1", ClientID: "c1"},
	}}
	cached := NewCachedFacade(next, store, time.Minute, logging.Discard())

	for range 3 {
		user, err := cached.GetUser(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "c1", user.ClientID)
	}

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, time.Minute, store.ttls["clients:user:u1"])
}

func TestCachedFacadeSkipsUsersWithoutClient(t *testing.T) {
	store := newMemoryStore()
	next := &countingFacade{users: map[string]*facade.UserRecord{
		"u2": {Subject: "u2"},
	}}
	cached := NewCachedFacade(next, store, time.Minute, logging.Discard())

	for range 2 {
		_, err := cached.GetUser(context.Background(), "u2")
		require.NoError(t, err)
	}
	user, err := cached.GetUser(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, user)

	assert.Equal(t, 3, next.calls)
	assert.Empty(t, store.values)
}

func TestCachedFacadeToleratesCacheFailures(t *testing.T) {
	store := newMemoryStore()
	store.failGet = true
	store.failSet = true
	next := &countingFacade{users: map[string]*facade.UserRecord{
		"u1": {Subject: "u1", ClientID: "c1"},
	}}
	cached := NewCachedFacade(next, store, time.Minute, logging.Discard())

	user, err := cached.GetUser(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, "c1", user.ClientID)
}

func TestCachedFacadeDiscardsMalformedEntries(t *testing.T) {
	store := newMemoryStore()
	store.values["clients:user:u1"] = "{broken"
	next := &countingFacade{users: map[string]*facade.UserRecord{
		"u1": {Subject: "u1", ClientID: "c1"},
	}}
	cached := NewCachedFacade(next, store, time.Minute, logging.Discard())

	user, err := cached.GetUser(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, "c1", user.ClientID)
	assert.Equal(t, 1, next.calls)
	assert.Contains(t, store.values["clients:user:u1"], `"client_id":"c1"`)
}

func TestCachedFacadePropagatesErrors(t *testing.T) {
	boom := errors.New("user service down")
	cached := NewCachedFacade(&countingFacade{err: boom}, newMemoryStore(), time.Minute, logging.Discard())

	_, err := cached.GetUser(context.Background(), "u1")

	assert.ErrorIs(t, err, boom)
}
