// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package console

import (
	"fmt"
	"time"

	"github.com/olegiv/userdesk/internal/model"
)

// Form titles and help texts.
const (
	TitleCreate        = "Add New User"
	TitleEdit          = "Edit User"
	SubmitCreate       = "Add User"
	SubmitEdit         = "Update User"
	HelpPasswordCreate = "Password is required for new users"
	HelpPasswordEdit   = "Leave empty to keep current password"
	NoUsersMessage     = "No users found."
)

// UserRow is one rendered table row.
type UserRow struct {
	ID        int64
	FirstName string
	LastName  string
	Age       int
	Username  string
	Roles     string
}

func newUserRow(u model.User, prefix string) UserRow {
	return UserRow{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Age:       u.Age,
		Username:  u.Username,
		Roles:     u.RoleNames(prefix),
	}
}

// RoleOption is one role checkbox.
type RoleOption struct {
	ID      int64
	Label   string
	Checked bool
}

// FormView is the open user form.
type FormView struct {
	Create       bool
	Title        string
	SubmitText   string
	PasswordHelp string
	Values       FormValues
	Errors       FieldErrors
	Roles        []RoleOption
}

// DeleteView is the open delete confirmation.
type DeleteView struct {
	UserID int64
	Name   string
}

// BannerView is the banner as rendered.
type BannerView struct {
	Kind        string
	Message     string
	Detail      string
	Persistent  bool
	ExpiresInMs int64
}

// UserListView is everything the admin page template needs.
type UserListView struct {
	Rows         []UserRow
	EmptyMessage string // Set when there are no rows to show
	Loading      bool
	Keyword      string
	Searching    bool
	Form         *FormView
	Delete       *DeleteView
	Banner       *BannerView
}

// CurrentUserView is everything the profile page template needs.
type CurrentUserView struct {
	User   *UserRow
	Banner *BannerView
}

// BuildUserListView turns a State into template data. It does not modify s.
func BuildUserListView(s *State, rolePrefix string, now time.Time) UserListView {
	v := UserListView{
		Loading:   s.Loading,
		Keyword:   s.Keyword,
		Searching: s.Searching(),
	}

	visible := s.Visible()
	v.Rows = make([]UserRow, 0, len(visible))
	for _, u := range visible {
		v.Rows = append(v.Rows, newUserRow(u, rolePrefix))
	}
	if len(v.Rows) == 0 {
		if v.Searching {
			v.EmptyMessage = fmt.Sprintf("No users found for %q!", s.Keyword)
		} else {
			v.EmptyMessage = NoUsersMessage
		}
	}

	if s.Modal == ModalForm && s.Form != nil {
		v.Form = buildFormView(s.Form, s.Roles, rolePrefix)
	}
	if s.Modal == ModalConfirmDelete && s.DeleteTarget != nil {
		v.Delete = &DeleteView{UserID: s.DeleteTarget.ID, Name: s.DeleteTarget.DisplayName()}
	}
	v.Banner = buildBannerView(s.Banner, now)

	return v
}

func buildFormView(f *FormState, catalog []model.Role, rolePrefix string) *FormView {
	fv := &FormView{
		Create: f.Mode != FormEdit,
		Values: f.Values,
		Errors: f.Errors,
	}
	// The password is never echoed back.
	fv.Values.Password = ""
	if fv.Errors == nil {
		fv.Errors = FieldErrors{}
	}

	if fv.Create {
		fv.Title, fv.SubmitText, fv.PasswordHelp = TitleCreate, SubmitCreate, HelpPasswordCreate
	} else {
		fv.Title, fv.SubmitText, fv.PasswordHelp = TitleEdit, SubmitEdit, HelpPasswordEdit
	}

	fv.Roles = make([]RoleOption, 0, len(catalog))
	for _, r := range catalog {
		fv.Roles = append(fv.Roles, RoleOption{
			ID:      r.ID,
			Label:   r.DisplayName(rolePrefix),
			Checked: f.Values.HasRole(r.ID),
		})
	}
	return fv
}

func buildBannerView(b *Banner, now time.Time) *BannerView {
	if !b.Active(now) {
		return nil
	}
	bv := &BannerView{
		Kind:       string(b.Kind),
		Message:    b.Message,
		Detail:     b.Detail,
		Persistent: b.ExpiresAt.IsZero(),
	}
	if !bv.Persistent {
		bv.ExpiresInMs = b.ExpiresAt.Sub(now).Milliseconds()
	}
	return bv
}
