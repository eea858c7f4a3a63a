// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the user and role records exchanged with the
// admin backend.
package model

import (
	"fmt"
	"strings"
)

// User is a user account as returned by the backend.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       int    `json:"age"`
	Username  string `json:"username"` // Login, an email address
	Roles     []Role `json:"roles"`
}

// DisplayName returns "First Last (username)", as shown in the delete confirmation.
func (u User) DisplayName() string {
	return fmt.Sprintf("%s %s (%s)", u.FirstName, u.LastName, u.Username)
}

// RoleNames returns the comma-joined display names of the user's roles.
func (u User) RoleNames(prefix string) string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.DisplayName(prefix))
	}
	return strings.Join(names, ", ")
}

// HasRole reports whether the user holds the role with the given id.
func (u User) HasRole(id int64) bool {
	for _, r := range u.Roles {
		if r.ID == id {
			return true
		}
	}
	return false
}

// UserPayload is the request body for creating or updating a user.
// Password is omitted when empty, which the backend treats as "unchanged" on update.
type UserPayload struct {
	ID        int64  `json:"id,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       int    `json:"age"`
	Username  string `json:"username"`
	Password  string `json:"password,omitempty"`
	Roles     []Role `json:"roles"`
}
