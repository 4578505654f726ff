// Package api is the client for the storefront's REST backend. One function
// per endpoint; request shaping and envelope unwrapping live here, view
// handlers stay thin.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const refreshPath = "/api/refresh"

// TokenStore is the per-visitor credential state: access token, refresh
// token, keyed by the sid cookie. Written by login, logout and the refresh
// path; read before every authenticated call.
type TokenStore interface {
	Tokens(sid string) (access, refresh string, err error)
	SetTokens(sid, access, refresh string) error
	ClearTokens(sid string) error
}

type Client struct {
	base  string
	http  *http.Client
	store TokenStore
	log   *logrus.Logger
}

func New(baseURL string, store TokenStore, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		http:  &http.Client{Timeout: 15 * time.Second},
		store: store,
		log:   logger,
	}
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
	// noAuth marks endpoints that take credentials in the request itself
	// (login, signup). They carry no bearer token and a 401 from them is a
	// definitive answer, not a trigger for refresh.
	noAuth bool
}

// do runs one backend call for the given visitor. On a 401 it attempts
// exactly one refresh and replays the original request once from its
// buffered body; the refresh call itself is never retried. Refresh failure
// (or a missing refresh token) clears the stored tokens and returns
// ErrUnauthenticated.
func (c *Client) do(ctx context.Context, sid string, r request) ([]byte, error) {
	if r.noAuth {
		status, body, err := c.send(ctx, r, "")
		if err != nil {
			return nil, err
		}
		return finish(status, body)
	}

	access, refresh, err := c.store.Tokens(sid)
	if err != nil {
		return nil, fmt.Errorf("read tokens: %w", err)
	}

	status, body, err := c.send(ctx, r, access)
	if err != nil {
		return nil, err
	}
	if status != http.StatusUnauthorized {
		return finish(status, body)
	}

	if refresh == "" {
		_ = c.store.ClearTokens(sid)
		return nil, ErrUnauthenticated
	}
	tok, err := c.Refresh(ctx, refresh)
	if err != nil {
		c.log.WithError(err).Warn("token refresh failed")
		_ = c.store.ClearTokens(sid)
		return nil, ErrUnauthenticated
	}
	if err := c.store.SetTokens(sid, tok.AccessToken, tok.RefreshToken); err != nil {
		return nil, fmt.Errorf("persist tokens: %w", err)
	}

	status, body, err = c.send(ctx, r, tok.AccessToken)
	if err != nil {
		return nil, err
	}
	return finish(status, body)
}

func (c *Client) send(ctx context.Context, r request, access string) (int, []byte, error) {
	u := c.base + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	var rd io.Reader
	if r.body != nil {
		rd = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, u, rd)
	if err != nil {
		return 0, nil, err
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: read body: %w", r.method, r.path, err)
	}
	return resp.StatusCode, b, nil
}

func finish(status int, body []byte) ([]byte, error) {
	if status < 400 {
		return body, nil
	}
	return nil, &Error{Status: status, Detail: errorDetail(body)}
}

// errorDetail pulls the backend's message out of an error payload: FastAPI
// `detail`, or the envelope `message`.
func errorDetail(body []byte) string {
	var p struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return ""
	}
	if len(p.Detail) > 0 {
		var s string
		if json.Unmarshal(p.Detail, &s) == nil {
			return s
		}
		return string(p.Detail)
	}
	return p.Message
}

// Envelope responses wrap the payload under `data` next to a `message`;
// a few endpoints return the payload bare. unwrap handles both.
func unwrap(body []byte, out any) error {
	var env struct {
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err == nil && env.Data != nil {
		return json.Unmarshal(env.Data, out)
	}
	return json.Unmarshal(body, out)
}

func (c *Client) getJSON(ctx context.Context, sid, path string, q url.Values, out any) error {
	body, err := c.do(ctx, sid, request{method: http.MethodGet, path: path, query: q})
	if err != nil {
		return err
	}
	return unwrap(body, out)
}

func (c *Client) writeJSON(ctx context.Context, sid, method, path string, q url.Values, in, out any) error {
	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		payload = b
	}
	body, err := c.do(ctx, sid, request{
		method: method, path: path, query: q,
		body: payload, contentType: "application/json",
	})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return unwrap(body, out)
}

func (c *Client) delete(ctx context.Context, sid, path string) error {
	_, err := c.do(ctx, sid, request{method: http.MethodDelete, path: path})
	return err
}

// File is one upload destined for a multipart field (thumbnails, galleries).
type File struct {
	Field   string
	Name    string
	Content io.Reader
}

func multipartBody(fields map[string]string, files []File) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func (c *Client) writeMultipart(ctx context.Context, sid, method, path string, fields map[string]string, files []File, out any) error {
	payload, ct, err := multipartBody(fields, files)
	if err != nil {
		return err
	}
	body, err := c.do(ctx, sid, request{method: method, path: path, body: payload, contentType: ct})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return unwrap(body, out)
}
