// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package console

import (
	"time"

	"github.com/olegiv/userdesk/internal/model"
)

// The functions below are the only code that mutates a State. None of them
// performs I/O.

func (s *State) reset() {
	*s = State{}
}

func (s *State) beginLoading() {
	s.Loading = true
}

func (s *State) rolesLoaded(roles []model.Role) {
	s.Roles = roles
}

// usersLoaded replaces the list and drops any search filter: the table shows
// the full list again.
func (s *State) usersLoaded(users []model.User) {
	if users == nil {
		users = []model.User{}
	}
	s.Users = users
	s.Filtered = nil
	s.Keyword = ""
	s.Loading = false
}

func (s *State) loadFailed() {
	s.Loading = false
}

// showBanner replaces the current banner. A zero ttl makes it persistent.
func (s *State) showBanner(kind BannerKind, message, detail string, now time.Time, ttl time.Duration) {
	b := &Banner{Kind: kind, Message: message, Detail: detail}
	if ttl > 0 {
		b.ExpiresAt = now.Add(ttl)
	}
	s.Banner = b
}

func (s *State) dismissBanner() {
	s.Banner = nil
}

func (s *State) openCreateForm() {
	s.closeModal()
	s.Modal = ModalForm
	s.Form = &FormState{Mode: FormCreate, Errors: FieldErrors{}}
}

// openEditForm pre-fills every field except the password.
func (s *State) openEditForm(user model.User) {
	s.closeModal()

	roleIDs := make([]int64, 0, len(user.Roles))
	for _, r := range user.Roles {
		roleIDs = append(roleIDs, r.ID)
	}

	s.Modal = ModalForm
	s.EditTarget = &user
	s.Form = &FormState{
		Mode: FormEdit,
		Values: FormValues{
			UserID:    user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Age:       formatAge(user.Age),
			Username:  user.Username,
			RoleIDs:   roleIDs,
		},
		Errors: FieldErrors{},
	}
}

// formRejected keeps the form open with the offending fields marked.
func (s *State) formRejected(values FormValues, errs FieldErrors) {
	if s.Form == nil {
		return
	}
	s.Form.Values = values
	s.Form.Errors = errs
}

// formSubmitFailed keeps the form open with the submitted input intact.
func (s *State) formSubmitFailed(values FormValues) {
	if s.Form == nil {
		return
	}
	s.Form.Values = values
	s.Form.Errors = FieldErrors{}
}

func (s *State) openDeleteConfirm(user model.User) {
	s.closeModal()
	s.Modal = ModalConfirmDelete
	s.DeleteTarget = &user
}

// closeModal also resets the form and clears any edit or delete target.
func (s *State) closeModal() {
	s.Modal = ModalNone
	s.Form = nil
	s.EditTarget = nil
	s.DeleteTarget = nil
}

func (s *State) searchApplied(keyword string, matches []model.User) {
	if matches == nil {
		matches = []model.User{}
	}
	s.Keyword = keyword
	s.Filtered = matches
	s.Loading = false
}

func (s *State) searchCleared() {
	s.Keyword = ""
	s.Filtered = nil
}
