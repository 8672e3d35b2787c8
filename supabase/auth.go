// auth.go - Client for the platform auth service (sign-up, password
// sign-in, sign-out, session user lookup).

package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// AuthClient talks to the /auth/v1 endpoints. Obtain one via Client.Auth.
type AuthClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// AuthUser is the platform's view of an authenticated account.
type AuthUser struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
}

// Session is returned by a password sign-in.
type Session struct {
	AccessToken  string   `json:"access_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"`
	RefreshToken string   `json:"refresh_token"`
	User         AuthUser `json:"user"`
}

// SignUp creates a platform account. metadata lands in user_metadata
// (the storefront stores the full name there). Fails when the account
// already exists or the password policy is violated.
func (a *AuthClient) SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) (*AuthUser, error) {
	body := map[string]interface{}{"email": email, "password": password}
	if len(metadata) > 0 {
		body["data"] = metadata
	}
	resp, err := a.post(ctx, "/signup", body, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	// Depending on confirmation settings the service returns either the
	// bare user or a full session wrapping it.
	var out struct {
		AuthUser
		User *AuthUser `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode signup response: %w", err)
	}
	if out.User != nil {
		return out.User, nil
	}
	return &out.AuthUser, nil
}

// SignInWithPassword establishes a session. Invalid credentials come back
// as an *APIError with the platform's message.
func (a *AuthClient) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]interface{}{"email": email, "password": password}
	resp, err := a.post(ctx, "/token?grant_type=password", body, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

// SignOut revokes the session behind the access token.
func (a *AuthClient) SignOut(ctx context.Context, token string) error {
	resp, err := a.post(ctx, "/logout", nil, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// User validates an access token against the auth service and returns the
// account it belongs to.
func (a *AuthClient) User(ctx context.Context, token string) (*AuthUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/user", nil)
	if err != nil {
		return nil, err
	}
	setAuthHeaders(req, a.apiKey, token)
	resp, err := a.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("validate token: %w", err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	var user AuthUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &user, nil
}

func (a *AuthClient) post(ctx context.Context, path string, body interface{}, token string) (*http.Response, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode auth body: %w", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	setAuthHeaders(req, a.apiKey, token)
	req.Header.Set("Content-Type", "application/json")
	return a.http.Do(req)
}
