// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package backend is the HTTP client for the admin REST backend.
// Transport failures and non-2xx responses both surface as ErrRequestFailed.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/olegiv/userdesk/internal/model"
)

// Backend endpoints.
const (
	PathRoles       = "/api/admin/roles"
	PathUsers       = "/api/admin/users"
	PathCurrentUser = "/api/user/current"
)

// Client configuration constants
const (
	DefaultTimeout = 10 * time.Second
	MaxResponseLen = 1 << 20 // Largest JSON body the client will decode
	MaxErrorLen    = 512     // Error body bytes kept on StatusError
	UserAgent      = "userdesk/1.0"
)

// Options configures a Client.
type Options struct {
	// BaseURL is the backend origin without a trailing slash, e.g. http://localhost:8080
	BaseURL string

	// Token is an optional static bearer token, used when the inbound request
	// carries no Authorization header of its own.
	Token string

	// Timeout bounds each backend request. Zero uses DefaultTimeout.
	Timeout time.Duration

	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client

	Logger *slog.Logger
}

// Client talks to the admin backend on behalf of a console user.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a Client.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: opts.BaseURL,
		token:   opts.Token,
		http:    httpClient,
		logger:  logger,
	}
}

// ListRoles handles GET /api/admin/roles.
func (c *Client) ListRoles(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	if err := c.do(ctx, http.MethodGet, PathRoles, nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// ListUsers handles GET /api/admin/users.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, http.MethodGet, PathUsers, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser handles GET /api/admin/users/{id}.
func (c *Client) GetUser(ctx context.Context, id int64) (model.User, error) {
	var user model.User
	err := c.do(ctx, http.MethodGet, userPath(id), nil, &user)
	return user, err
}

// CreateUser handles POST /api/admin/users.
func (c *Client) CreateUser(ctx context.Context, payload model.UserPayload) (model.User, error) {
	var user model.User
	err := c.do(ctx, http.MethodPost, PathUsers, payload, &user)
	return user, err
}

// UpdateUser handles PUT /api/admin/users/{id}. The id is also sent in the body.
func (c *Client) UpdateUser(ctx context.Context, id int64, payload model.UserPayload) (model.User, error) {
	payload.ID = id
	var user model.User
	err := c.do(ctx, http.MethodPut, userPath(id), payload, &user)
	return user, err
}

// DeleteUser handles DELETE /api/admin/users/{id}.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, userPath(id), nil, nil)
}

// CurrentUser handles GET /api/user/current.
func (c *Client) CurrentUser(ctx context.Context) (model.User, error) {
	var user model.User
	err := c.do(ctx, http.MethodGet, PathCurrentUser, nil, &user)
	return user, err
}

// Ping checks that the backend answers HTTP at all. Any status counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("%w: building ping request: %w", ErrRequestFailed, err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	_ = resp.Body.Close()
	return nil
}

func userPath(id int64) string {
	return PathUsers + "/" + strconv.FormatInt(id, 10)
}

// do performs one JSON request. A nil out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	start := time.Now()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: building request: %w", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.applyCredentials(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "backend request failed",
			"method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.DebugContext(ctx, "backend request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, MaxErrorLen))
		statusErr := &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(errBody),
		}
		c.logger.WarnContext(ctx, "backend request failed",
			"method", method, "path", path, "status", resp.StatusCode)
		return statusErr
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseLen))
		return nil
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, MaxResponseLen)).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s response: %w", ErrRequestFailed, path, err)
	}
	return nil
}
