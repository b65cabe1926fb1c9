package store

import (
	"errors"
	"sync"

	"github.com/klwxsrx/go-auth-session/internal/session/domain"
)

var (
	ErrEmptyAccessToken = errors.New("access token is empty")
	ErrEmptyUser        = errors.New("user is empty")
)

type (
	// Ticket orders session-establishing operations by their start.
	Ticket uint64

	// Store holds the session of the current process.
	// Results of operations are applied only when no later started operation was applied before.
	Store interface {
		Get() domain.Session
		Set(user domain.User, token domain.AccessToken) error
		Clear()

		Begin() Ticket
		SetFor(ticket Ticket, user domain.User, token domain.AccessToken) (applied bool, err error)
		ClearFor(ticket Ticket) (applied bool)

		// Subscribe calls fn with every applied change in the applied order.
		// fn must neither mutate the store nor subscribe or unsubscribe.
		Subscribe(fn func(domain.Session)) (unsubscribe func())
	}

	store struct {
		mu          sync.RWMutex
		user        *domain.User
		token       domain.AccessToken
		loading     bool
		lastIssued  Ticket
		lastApplied Ticket

		notifyMu    sync.Mutex
		subscribers map[uint64]func(domain.Session)
		nextSubID   uint64
	}
)

// New returns a store in the initial state: loading, no user and no token.
func New() Store {
	return &store{
		loading:     true,
		subscribers: make(map[uint64]func(domain.Session)),
	}
}

func (s *store) Get() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot()
}

func (s *store) Set(user domain.User, token domain.AccessToken) error {
	_, err := s.SetFor(s.Begin(), user, token)
	return err
}

func (s *store) Clear() {
	s.ClearFor(s.Begin())
}

func (s *store) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastIssued++
	return s.lastIssued
}

func (s *store) SetFor(ticket Ticket, user domain.User, token domain.AccessToken) (bool, error) {
	if token == "" {
		return false, ErrEmptyAccessToken
	}
	if user == (domain.User{}) {
		return false, ErrEmptyUser
	}

	return s.apply(ticket, &user, token), nil
}

func (s *store) ClearFor(ticket Ticket) bool {
	return s.apply(ticket, nil, "")
}

func (s *store) Subscribe(fn func(domain.Session)) func() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.notifyMu.Lock()
		defer s.notifyMu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *store) apply(ticket Ticket, user *domain.User, token domain.AccessToken) bool {
	s.mu.Lock()
	if ticket <= s.lastApplied {
		s.mu.Unlock()
		return false
	}

	s.lastApplied = ticket
	s.user = user
	s.token = token
	s.loading = false
	session := s.snapshot()

	// notifyMu is taken before mu is released so subscribers see changes in the applied order
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	for _, fn := range s.subscribers {
		fn(copySession(session))
	}
	return true
}

func (s *store) snapshot() domain.Session {
	return copySession(domain.Session{
		User:        s.user,
		AccessToken: s.token,
		IsLoading:   s.loading,
	})
}

func copySession(session domain.Session) domain.Session {
	if session.User != nil {
		user := *session.User
		session.User = &user
	}
	return session
}
