package usecase

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	sessionDomain "github.com/allisson/notekeeper/internal/session/domain"
)

func TestReduce(t *testing.T) {
	expiresOn := time.Unix(1700003600, 0)
	authenticated := sessionDomain.AuthState{
		Status:    sessionDomain.StatusAuthenticated,
		UserID:    "user123",
		SecretKey: "secret",
		ExpiresOn: expiresOn,
	}

	tests := []struct {
		name   string
		state  sessionDomain.AuthState
		action Action
		want   sessionDomain.AuthState
	}{
		{
			name:   "start clears a previous error",
			state:  sessionDomain.AuthState{Status: sessionDomain.StatusFailed, Error: "boom", Err: assert.AnError},
			action: Action{Type: ActionStart},
			want:   sessionDomain.AuthState{Status: sessionDomain.StatusAuthenticating},
		},
		{
			name:  "success",
			state: sessionDomain.AuthState{Status: sessionDomain.StatusAuthenticating},
			action: Action{
				Type:      ActionSuccess,
				UserID:    "user123",
				SecretKey: "secret",
				ExpiresOn: expiresOn,
			},
			want: authenticated,
		},
		{
			name:   "failed drops the secret key",
			state:  authenticated,
			action: Action{Type: ActionFailed, Err: sessionDomain.ErrKeyTampered},
			want: sessionDomain.AuthState{
				Status:    sessionDomain.StatusFailed,
				UserID:    "user123",
				ExpiresOn: expiresOn,
				Error:     "WARNING: Key tampered!",
				Err:       sessionDomain.ErrKeyTampered,
			},
		},
		{
			name:   "logout",
			state:  authenticated,
			action: Action{Type: ActionLogout},
			want:   InitialState(),
		},
		{
			name:   "error reset after failure",
			state:  sessionDomain.AuthState{Status: sessionDomain.StatusFailed, Error: "boom", Err: assert.AnError},
			action: Action{Type: ActionErrorReset},
			want:   sessionDomain.AuthState{Status: sessionDomain.StatusIdle},
		},
		{
			name:   "error reset keeps an authenticated session",
			state:  authenticated,
			action: Action{Type: ActionErrorReset},
			want:   authenticated,
		},
		{
			name:   "unknown action",
			state:  authenticated,
			action: Action{Type: ActionType(99)},
			want:   authenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reduce(tt.state, tt.action))
		})
	}
}

func TestStateStore(t *testing.T) {
	t.Run("starts idle", func(t *testing.T) {
		assert.Equal(t, sessionDomain.StatusIdle, NewStateStore().State().Status)
	})

	t.Run("subscribers see every transition in order", func(t *testing.T) {
		s := NewStateStore()
		var got []sessionDomain.Status
		cancel := s.Subscribe(func(state sessionDomain.AuthState) {
			got = append(got, state.Status)
		})

		s.Dispatch(Action{Type: ActionStart})
		s.Dispatch(Action{Type: ActionSuccess, UserID: "user123"})
		cancel()
		cancel()
		s.Dispatch(Action{Type: ActionLogout})

		assert.Equal(t, []sessionDomain.Status{
			sessionDomain.StatusAuthenticating,
			sessionDomain.StatusAuthenticated,
		}, got)
	})

	t.Run("concurrent dispatch", func(t *testing.T) {
		s := NewStateStore()
		var mu sync.Mutex
		count := 0
		s.Subscribe(func(sessionDomain.AuthState) {
			mu.Lock()
			count++
			mu.Unlock()
		})

		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.Dispatch(Action{Type: ActionStart})
				_ = s.State()
			}()
		}
		wg.Wait()

		assert.Equal(t, 50, count)
	})
}
