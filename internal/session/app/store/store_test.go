package store_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klwxsrx/go-auth-session/internal/session/app/store"
	"github.com/klwxsrx/go-auth-session/internal/session/domain"
)

var testUser = domain.User{ID: 1, Email: "a@b.com"}

func requireInvariant(t *testing.T, session domain.Session) {
	t.Helper()
	require.Equal(t, session.User == nil, session.AccessToken == "", "user and token must be set together: %+v", session)
}

func TestStore_InitialState(t *testing.T) {
	session := store.New().Get()

	assert.True(t, session.IsLoading)
	assert.Nil(t, session.User)
	assert.Empty(t, session.AccessToken)
	assert.Equal(t, domain.StateInit, session.State())
}

func TestStore_SetAndClear(t *testing.T) {
	s := store.New()

	require.NoError(t, s.Set(testUser, "tok1"))
	session := s.Get()
	requireInvariant(t, session)
	assert.False(t, session.IsLoading)
	assert.Equal(t, testUser, *session.User)
	assert.Equal(t, domain.AccessToken("tok1"), session.AccessToken)
	assert.Equal(t, domain.StateAuthenticated, session.State())

	s.Clear()
	session = s.Get()
	requireInvariant(t, session)
	assert.False(t, session.IsLoading)
	assert.Equal(t, domain.StateAnonymous, session.State())
}

func TestStore_SetRejectsEmptyInput(t *testing.T) {
	s := store.New()
	require.NoError(t, s.Set(testUser, "tok1"))

	assert.ErrorIs(t, s.Set(testUser, ""), store.ErrEmptyAccessToken)
	assert.ErrorIs(t, s.Set(domain.User{}, "tok2"), store.ErrEmptyUser)

	session := s.Get()
	assert.Equal(t, domain.AccessToken("tok1"), session.AccessToken)
	assert.Equal(t, testUser, *session.User)
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := store.New()
	require.NoError(t, s.Set(testUser, "tok1"))

	session := s.Get()
	session.User.Email = "changed@b.com"

	assert.Equal(t, "a@b.com", s.Get().User.Email)
}

func TestStore_StaleResultIsDropped(t *testing.T) {
	tests := []struct {
		name        string
		run         func(s store.Store)
		expectUser  bool
		expectToken domain.AccessToken
	}{
		{
			name: "stale_login_after_logout",
			run: func(s store.Store) {
				login := s.Begin()
				logout := s.Begin()
				assert.True(t, s.ClearFor(logout))
				applied, err := s.SetFor(login, testUser, "tok1")
				assert.NoError(t, err)
				assert.False(t, applied)
			},
		},
		{
			name: "stale_refresh_failure_after_login",
			run: func(s store.Store) {
				refresh := s.Begin()
				login := s.Begin()
				applied, err := s.SetFor(login, testUser, "tok1")
				assert.NoError(t, err)
				assert.True(t, applied)
				assert.False(t, s.ClearFor(refresh))
			},
			expectUser:  true,
			expectToken: "tok1",
		},
		{
			name: "completions_in_start_order",
			run: func(s store.Store) {
				refresh := s.Begin()
				login := s.Begin()
				assert.True(t, s.ClearFor(refresh))
				applied, err := s.SetFor(login, testUser, "tok2")
				assert.NoError(t, err)
				assert.True(t, applied)
			},
			expectUser:  true,
			expectToken: "tok2",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := store.New()
			tc.run(s)

			session := s.Get()
			requireInvariant(t, session)
			assert.False(t, session.IsLoading)
			assert.Equal(t, tc.expectUser, session.User != nil)
			assert.Equal(t, tc.expectToken, session.AccessToken)
		})
	}
}

func TestStore_Subscribe(t *testing.T) {
	s := store.New()

	var received []domain.Session
	unsubscribe := s.Subscribe(func(session domain.Session) {
		received = append(received, session)
	})

	require.NoError(t, s.Set(testUser, "tok1"))
	s.ClearFor(0)
	s.Clear()
	unsubscribe()
	require.NoError(t, s.Set(testUser, "tok2"))

	require.Len(t, received, 2)
	assert.Equal(t, domain.AccessToken("tok1"), received[0].AccessToken)
	assert.Equal(t, domain.StateAnonymous, received[1].State())
}

func TestStore_ConcurrentMutationsKeepInvariant(t *testing.T) {
	s := store.New()
	s.Subscribe(func(session domain.Session) {
		assert.Equal(t, session.User == nil, session.AccessToken == "")
	})

	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Set(testUser, "tok")
		}()
		go func() {
			defer wg.Done()
			s.Clear()
		}()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			session := s.Get()
			if (session.User == nil) != (session.AccessToken == "") {
				t.Errorf("invariant violated: %+v", session)
				return
			}
		}
	}()

	wg.Wait()
	<-done
	requireInvariant(t, s.Get())
}
