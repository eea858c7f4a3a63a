// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package backend

import (
	"context"
	"net/http"
)

// Credentials are the caller's session credentials relayed to the backend.
type Credentials struct {
	Authorization string
	Cookies       []*http.Cookie
}

// IsZero reports whether no credential is present.
func (c Credentials) IsZero() bool {
	return c.Authorization == "" && len(c.Cookies) == 0
}

type credentialsKey struct{}

// WithCredentials returns a context carrying creds for backend calls.
func WithCredentials(ctx context.Context, creds Credentials) context.Context {
	return context.WithValue(ctx, credentialsKey{}, creds)
}

// CredentialsFrom returns the credentials stored in ctx, if any.
func CredentialsFrom(ctx context.Context) (Credentials, bool) {
	creds, ok := ctx.Value(credentialsKey{}).(Credentials)
	return creds, ok
}

// applyCredentials copies the caller's credentials onto req. The static token
// is only a fallback when the caller sent no Authorization header.
func (c *Client) applyCredentials(ctx context.Context, req *http.Request) {
	creds, _ := CredentialsFrom(ctx)

	switch {
	case creds.Authorization != "":
		req.Header.Set("Authorization", creds.Authorization)
	case c.token != "":
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	for _, cookie := range creds.Cookies {
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}
}
