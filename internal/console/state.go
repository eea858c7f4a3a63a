// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package console holds the admin console view model: the per-session State,
// the commands that change it, and the controllers that call the backend.
//
// Every user action is one Command. A controller method performs the backend
// calls the command needs and applies one of the pure transitions in this
// package to the State; rendering is a separate pure step (BuildUserListView).
package console

import (
	"time"

	"github.com/olegiv/userdesk/internal/model"
)

// ModalKind identifies the single modal that may be open.
type ModalKind string

// Modal kinds.
const (
	ModalNone          ModalKind = ""
	ModalForm          ModalKind = "form"
	ModalConfirmDelete ModalKind = "confirm-delete"
)

// FormMode distinguishes the create and edit variants of the user form.
type FormMode string

// Form modes.
const (
	FormCreate FormMode = "create"
	FormEdit   FormMode = "edit"
)

// BannerKind is the Bootstrap alert variant of a banner.
type BannerKind string

// Banner kinds.
const (
	BannerSuccess BannerKind = "success"
	BannerDanger  BannerKind = "danger"
)

// Banner is a transient notification. A zero ExpiresAt never expires.
type Banner struct {
	Kind      BannerKind `json:"kind"`
	Message   string     `json:"message"`
	Detail    string     `json:"detail,omitempty"` // Raw backend error text, sanitised at render time
	ExpiresAt time.Time  `json:"expiresAt,omitzero"`
}

// Active reports whether the banner should still be shown at now.
func (b *Banner) Active(now time.Time) bool {
	if b == nil {
		return false
	}
	return b.ExpiresAt.IsZero() || now.Before(b.ExpiresAt)
}

// FormValues are the raw field values of the user form, keyed like the DOM ids.
type FormValues struct {
	UserID    int64   `json:"userId,omitempty"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Age       string  `json:"age"`
	Username  string  `json:"username"`
	Password  string  `json:"-"` // Never persisted or echoed back
	RoleIDs   []int64 `json:"roleIds"`
}

// HasRole reports whether the role checkbox with id is checked.
func (v FormValues) HasRole(id int64) bool {
	for _, r := range v.RoleIDs {
		if r == id {
			return true
		}
	}
	return false
}

// FieldErrors maps a form field id (firstName, age, roles...) to its message.
type FieldErrors map[string]string

// FormState is the open user form.
type FormState struct {
	Mode   FormMode    `json:"mode"`
	Values FormValues  `json:"values"`
	Errors FieldErrors `json:"errors,omitempty"`
}

// State is the view model of one console session.
type State struct {
	Roles        []model.Role `json:"roles"`
	Users        []model.User `json:"users"`
	Filtered     []model.User `json:"filtered,omitempty"`
	Keyword      string       `json:"keyword,omitempty"`
	Loading      bool         `json:"loading,omitempty"`
	Modal        ModalKind    `json:"modal,omitempty"`
	Form         *FormState   `json:"form,omitempty"`
	EditTarget   *model.User  `json:"editTarget,omitempty"`
	DeleteTarget *model.User  `json:"deleteTarget,omitempty"`
	Banner       *Banner      `json:"banner,omitempty"`
}

// Searching reports whether a search filter is active.
func (s *State) Searching() bool {
	return s.Keyword != ""
}

// Visible returns the users the table should show.
func (s *State) Visible() []model.User {
	if s.Searching() {
		return s.Filtered
	}
	return s.Users
}

// findUser looks a user up in the last loaded list.
func (s *State) findUser(id int64) (model.User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}
