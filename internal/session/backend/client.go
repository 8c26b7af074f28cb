// Package backend implements the Auth Backend client over HTTP/JSON.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	sessionDomain "github.com/allisson/notekeeper/internal/session/domain"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Client talks to the Auth Backend. The cookie set by authenticate is kept in the
// client's jar and replayed on the session endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for baseURL (e.g. http://localhost:8080/api).
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
	}, nil
}

type credentialRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerResponse struct {
	UserID string `json:"userId"`
}

type authenticateResponse struct {
	ExpiresOn int64  `json:"expiresOn"`
	UserID    string `json:"userId"`
	SecretKey string `json:"secretKey"`
}

type createSessionRequest struct {
	Username         string `json:"username"`
	SessionSecretKey string `json:"sessionSecretKey"`
	KeyID            string `json:"keyId"`
}

type sessionRequest struct {
	Username string `json:"username"`
	UUID     string `json:"uuid"`
}

type fetchSessionResponse struct {
	SecretKey string `json:"secretKey"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	var out registerResponse
	if err := c.post(ctx, "/register", credentialRequest{Username: username, Password: password}, &out); err != nil {
		return "", err
	}
	return out.UserID, nil
}

// Authenticate posts the credentials and returns the account-level wrapped Secret Key.
func (c *Client) Authenticate(
	ctx context.Context,
	credential sessionDomain.Credential,
) (*sessionDomain.AuthenticateResult, error) {
	var out authenticateResponse
	req := credentialRequest{Username: credential.Username, Password: credential.Password}
	if err := c.post(ctx, "/authenticate", req, &out); err != nil {
		return nil, err
	}
	return &sessionDomain.AuthenticateResult{
		ExpiresOn: out.ExpiresOn,
		UserID:    out.UserID,
		SecretKey: out.SecretKey,
	}, nil
}

// CreateSession registers a session-wrapped Secret Key.
func (c *Client) CreateSession(ctx context.Context, username, sessionSecretKey, keyID string) error {
	return c.post(ctx, "/session/create", createSessionRequest{
		Username:         username,
		SessionSecretKey: sessionSecretKey,
		KeyID:            keyID,
	}, nil)
}

// FetchSession returns the session-wrapped Secret Key registered under keyID.
func (c *Client) FetchSession(ctx context.Context, username, keyID string) (string, error) {
	var out fetchSessionResponse
	if err := c.post(ctx, "/session/fetch", sessionRequest{Username: username, UUID: keyID}, &out); err != nil {
		return "", err
	}
	return out.SecretKey, nil
}

// RevokeSession invalidates the session registered under keyID.
func (c *Client) RevokeSession(ctx context.Context, username, keyID string) error {
	return c.post(ctx, "/session/revoke", sessionRequest{Username: username, UUID: keyID}, nil)
}

// post sends body as JSON and decodes a 2xx answer into out when out is not nil.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", sessionDomain.ErrNetwork, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return rejection(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: invalid response from %s: %w", sessionDomain.ErrNetwork, path, err)
	}
	return nil
}

func rejection(resp *http.Response) error {
	rejected := &sessionDomain.AuthRejectedError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return rejected
	}

	var body errorResponse
	if json.Unmarshal(data, &body) == nil {
		rejected.Message = body.Message
	}
	return rejected
}
