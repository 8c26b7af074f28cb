package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sessionDomain "github.com/allisson/notekeeper/internal/session/domain"
	sessionUseCase "github.com/allisson/notekeeper/internal/session/usecase"
)

// SessionDeps groups what the client session commands need.
type SessionDeps struct {
	Manager sessionUseCase.SessionManager
	Logger  *slog.Logger
	IO      IOTuple
}

// stateOutput is the printable form of an AuthState. It never carries the Secret Key.
type stateOutput struct {
	Status    string `json:"status"`
	UserID    string `json:"user_id,omitempty"`
	ExpiresOn string `json:"expires_on,omitempty"`
	Error     string `json:"error,omitempty"`
}

func newStateOutput(state sessionDomain.AuthState) stateOutput {
	out := stateOutput{
		Status: string(state.Status),
		UserID: state.UserID,
		Error:  state.Error,
	}
	if !state.ExpiresOn.IsZero() {
		out.ExpiresOn = state.ExpiresOn.UTC().Format(time.RFC3339)
	}
	return out
}

func printState(deps SessionDeps, state sessionDomain.AuthState, format string) error {
	out := newStateOutput(state)
	if format == "json" {
		return writeJSON(deps.IO.Writer, out)
	}

	w := deps.IO.Writer
	_, _ = fmt.Fprintf(w, "Status: %s\n", out.Status)
	if out.UserID != "" {
		_, _ = fmt.Fprintf(w, "User ID: %s\n", out.UserID)
	}
	if out.ExpiresOn != "" {
		_, _ = fmt.Fprintf(w, "Expires On: %s\n", out.ExpiresOn)
	}
	if out.Error != "" {
		_, _ = fmt.Fprintf(w, "Error: %s\n", out.Error)
	}
	return nil
}

// RunRegister creates an account. The password is the first line of deps.IO.Reader.
func RunRegister(ctx context.Context, deps SessionDeps, username string) error {
	password, err := readPassword(deps.IO.Reader)
	if err != nil {
		return err
	}

	credential := sessionDomain.Credential{Username: username, Password: password}
	if err := deps.Manager.Register(ctx, credential); err != nil {
		_, _ = fmt.Fprintf(deps.IO.Writer, "Error: %s\n", sessionDomain.Message(err))
		return err
	}

	_, _ = fmt.Fprintf(deps.IO.Writer, "Account %s registered\n", username)
	return nil
}

// RunLogin authenticates and persists an encrypted session for later runs. The password
// is the first line of deps.IO.Reader. A failed login prints the state and returns its
// error.
func RunLogin(ctx context.Context, deps SessionDeps, username, format string) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	password, err := readPassword(deps.IO.Reader)
	if err != nil {
		return err
	}

	state := deps.Manager.Login(ctx, sessionDomain.Credential{Username: username, Password: password})
	if err := printState(deps, state, format); err != nil {
		return err
	}

	if !state.IsAuthenticated() {
		return loginError(state)
	}

	deps.Logger.Debug("login completed", slog.String("user_id", state.UserID))
	return nil
}

// RunStatus resumes the stored session and prints the resulting state. An idle state is
// not an error; a failed resume is.
func RunStatus(ctx context.Context, deps SessionDeps, format string) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	state := deps.Manager.Resume(ctx)
	if err := printState(deps, state, format); err != nil {
		return err
	}

	if state.Status == sessionDomain.StatusFailed {
		return loginError(state)
	}
	return nil
}

// RunLogout clears the stored session.
func RunLogout(ctx context.Context, deps SessionDeps) error {
	deps.Manager.Logout(ctx)
	_, _ = fmt.Fprintln(deps.IO.Writer, "Logged out")
	return nil
}

func loginError(state sessionDomain.AuthState) error {
	if state.Err != nil {
		return state.Err
	}
	if state.Error != "" {
		return errors.New(state.Error)
	}
	return fmt.Errorf("unexpected session status: %s", state.Status)
}
