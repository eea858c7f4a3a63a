// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRole_DisplayName(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{"ROLE_ADMIN", DefaultRolePrefix, "ADMIN"},
		{"ROLE_USER", DefaultRolePrefix, "USER"},
		{"ADMIN", DefaultRolePrefix, "ADMIN"},
		{"MY_ROLE_X", DefaultRolePrefix, "MY_ROLE_X"},
		{"ROLE_ADMIN", "", "ROLE_ADMIN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Role{Name: tt.name}.DisplayName(tt.prefix)
			if got != tt.want {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.prefix, got, tt.want)
			}
		})
	}
}

func TestUser_RoleNames(t *testing.T) {
	u := User{Roles: []Role{{ID: 1, Name: "ROLE_ADMIN"}, {ID: 2, Name: "ROLE_USER"}}}

	if got := u.RoleNames(DefaultRolePrefix); got != "ADMIN, USER" {
		t.Errorf("RoleNames() = %q, want %q", got, "ADMIN, USER")
	}
	if got := (User{}).RoleNames(DefaultRolePrefix); got != "" {
		t.Errorf("RoleNames() of no roles = %q, want empty", got)
	}
}

func TestUser_DisplayName(t *testing.T) {
	u := User{FirstName: "John", LastName: "Smith", Username: "john@example.com"}
	if got := u.DisplayName(); got != "John Smith (john@example.com)" {
		t.Errorf("DisplayName() = %q", got)
	}
}

func TestUser_HasRole(t *testing.T) {
	u := User{Roles: []Role{{ID: 2, Name: "ROLE_USER"}}}
	if !u.HasRole(2) {
		t.Error("HasRole(2) = false, want true")
	}
	if u.HasRole(1) {
		t.Error("HasRole(1) = true, want false")
	}
}

func TestFindRole(t *testing.T) {
	catalog := []Role{{ID: 1, Name: "ROLE_ADMIN"}, {ID: 2, Name: "ROLE_USER"}}

	if r, ok := FindRole(catalog, 2); !ok || r.Name != "ROLE_USER" {
		t.Errorf("FindRole(2) = %+v, %v", r, ok)
	}
	if _, ok := FindRole(catalog, 9); ok {
		t.Error("FindRole(9) should not be found")
	}
}

func TestUserPayload_OmitsEmptyPassword(t *testing.T) {
	data, err := json.Marshal(UserPayload{FirstName: "Anna", Roles: []Role{}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.Contains(string(data), "password") {
		t.Errorf("payload %s should not contain password", data)
	}
	if strings.Contains(string(data), `"id"`) {
		t.Errorf("payload %s should not contain id", data)
	}

	data, err = json.Marshal(UserPayload{ID: 3, Password: "secret"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"password":"secret"`) || !strings.Contains(string(data), `"id":3`) {
		t.Errorf("payload %s should contain id and password", data)
	}
}
