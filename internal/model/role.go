// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "strings"

// DefaultRolePrefix is the conventional prefix of backend role names.
const DefaultRolePrefix = "ROLE_"

// Role is a named permission grouping. Roles are read-only reference data.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DisplayName returns the role name without the given prefix.
func (r Role) DisplayName(prefix string) string {
	return strings.TrimPrefix(r.Name, prefix)
}

// FindRole returns the role with the given id from a catalog.
func FindRole(catalog []Role, id int64) (Role, bool) {
	for _, r := range catalog {
		if r.ID == id {
			return r, true
		}
	}
	return Role{}, false
}
