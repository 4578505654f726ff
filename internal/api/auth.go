package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"shopfront/internal/domain"
)

type AuthResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int         `json:"expires_in"`
	User         domain.User `json:"user"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login exchanges credentials for a token pair plus the user record. The
// backend exposes separate endpoints per role; the role comes from the
// sign-in form's toggle. A 401 here carries the backend's own message.
func (c *Client) Login(ctx context.Context, username, password, role string) (*AuthResponse, error) {
	path := "/auth/login/user"
	if role == domain.RoleAdmin {
		path = "/auth/login/admin"
	}
	form := url.Values{"username": {username}, "password": {password}}
	body, err := c.do(ctx, "", request{
		method: http.MethodPost, path: path,
		body:        []byte(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
		noAuth:      true,
	})
	if err != nil {
		return nil, err
	}
	var out AuthResponse
	if err := unwrap(body, &out); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	return &out, nil
}

// Signup registers a new account. Role is always "user"; admins are created
// out of band.
func (c *Client) Signup(ctx context.Context, fullName, username, email, password string) error {
	in := map[string]string{
		"full_name": fullName,
		"username":  username,
		"email":     email,
		"password":  password,
		"role":      domain.RoleUser,
	}
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, "", request{
		method: http.MethodPost, path: "/auth/signup",
		body: payload, contentType: "application/json",
		noAuth: true,
	})
	return err
}

// Refresh exchanges the long-lived refresh token for a fresh pair. The token
// travels in a dedicated header, not as a bearer, and the call is never
// retried: one failure means the visitor logs in again.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+refreshPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("refresh_token", refreshToken)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("refresh: read body: %w", err)
	}
	body, err := finish(resp.StatusCode, b)
	if err != nil {
		return nil, err
	}
	var out TokenPair
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode refresh response: %w", err)
	}
	return &out, nil
}
