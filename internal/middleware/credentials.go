// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"

	"github.com/olegiv/userdesk/internal/backend"
)

// ForwardCredentials copies the caller's Authorization header and the named
// cookies into the request context, where the backend client picks them up.
func ForwardCredentials(cookieNames []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			creds := backend.Credentials{
				Authorization: r.Header.Get("Authorization"),
			}
			for _, name := range cookieNames {
				if c, err := r.Cookie(name); err == nil && c.Value != "" {
					creds.Cookies = append(creds.Cookies, &http.Cookie{Name: c.Name, Value: c.Value})
				}
			}

			if !creds.IsZero() {
				r = r.WithContext(backend.WithCredentials(r.Context(), creds))
			}
			next.ServeHTTP(w, r)
		})
	}
}
