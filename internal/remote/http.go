package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"triad/internal/domain"
)

// ErrUnauthorized matches StatusErrors carrying 401 or 403.
var ErrUnauthorized = errors.New("remote: unauthorized")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method string
	URL    string
	Status string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote %s %s: %s", strings.ToLower(e.Method), e.URL, e.Status)
}

// Is lets errors.Is match ErrUnauthorized.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && (e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden)
}

// Client talks to the auth endpoints.
type Client struct {
	Base string
	HTTP *http.Client
}

// NewHTTP returns a Client for base using hc (http.DefaultClient when nil).
func NewHTTP(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{Base: strings.TrimRight(base, "/"), HTTP: hc}
}

// Login performs a full credential login.
func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (domain.Tokens, error) {
	var out domain.Tokens
	if err := c.post(ctx, "/auth/login", req, &out); err != nil {
		return domain.Tokens{}, err
	}
	return out, nil
}

// Refresh exchanges a refresh token for a new access token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (domain.Tokens, error) {
	var out domain.Tokens
	in := struct {
		RefreshToken string `json:"refresh_token"`
	}{RefreshToken: refreshToken}
	if err := c.post(ctx, "/auth/refresh", in, &out); err != nil {
		return domain.Tokens{}, err
	}
	return out, nil
}

// Ping checks an access token against the service.
func (c *Client) Ping(ctx context.Context, accessToken string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+"/ping", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	return c.do(req, nil)
}

func (c *Client) post(ctx context.Context, path string, in any, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return &StatusError{
			Method: req.Method,
			URL:    req.URL.String(),
			Status: resp.Status,
			Code:   resp.StatusCode,
		}
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

var _ domain.Authenticator = (*Client)(nil)
