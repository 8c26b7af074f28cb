package usecase

import (
	"sync"
	"time"

	sessionDomain "github.com/allisson/notekeeper/internal/session/domain"
)

// ActionType identifies a state transition.
type ActionType int

const (
	ActionStart ActionType = iota + 1
	ActionSuccess
	ActionFailed
	ActionLogout
	ActionErrorReset
)

// Action is a state transition request. Only the fields relevant to Type are read.
type Action struct {
	Type      ActionType
	UserID    string
	SecretKey string
	ExpiresOn time.Time
	Err       error
}

// InitialState is the logged-out state.
func InitialState() sessionDomain.AuthState {
	return sessionDomain.AuthState{Status: sessionDomain.StatusIdle}
}

// Reduce returns the state that results from applying action to state. It has no side
// effects.
func Reduce(state sessionDomain.AuthState, action Action) sessionDomain.AuthState {
	switch action.Type {
	case ActionStart:
		return sessionDomain.AuthState{Status: sessionDomain.StatusAuthenticating}
	case ActionSuccess:
		return sessionDomain.AuthState{
			Status:    sessionDomain.StatusAuthenticated,
			UserID:    action.UserID,
			SecretKey: action.SecretKey,
			ExpiresOn: action.ExpiresOn,
		}
	case ActionFailed:
		state.Status = sessionDomain.StatusFailed
		state.SecretKey = ""
		state.Err = action.Err
		state.Error = sessionDomain.Message(action.Err)
		return state
	case ActionLogout:
		return InitialState()
	case ActionErrorReset:
		if state.Status == sessionDomain.StatusFailed {
			state.Status = sessionDomain.StatusIdle
		}
		state.Err = nil
		state.Error = ""
		return state
	default:
		return state
	}
}

// StateStore owns the current AuthState. Dispatch applies Reduce and notifies
// subscribers in dispatch order. Subscribers run on the dispatching goroutine and must
// not dispatch themselves.
type StateStore struct {
	dispatchMu sync.Mutex

	mu          sync.RWMutex
	state       sessionDomain.AuthState
	subscribers map[uint64]func(sessionDomain.AuthState)
	nextID      uint64
}

// NewStateStore creates a StateStore holding InitialState.
func NewStateStore() *StateStore {
	return &StateStore{
		state:       InitialState(),
		subscribers: make(map[uint64]func(sessionDomain.AuthState)),
	}
}

// State returns a copy of the current state.
func (s *StateStore) State() sessionDomain.AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies action and returns the resulting state.
func (s *StateStore) Dispatch(action Action) sessionDomain.AuthState {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	s.state = Reduce(s.state, action)
	next := s.state
	subscribers := make([]func(sessionDomain.AuthState), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(next)
	}
	return next
}

// Subscribe registers fn and returns a function that removes it.
func (s *StateStore) Subscribe(fn func(sessionDomain.AuthState)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subscribers, id)
		})
	}
}
