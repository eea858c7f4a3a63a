// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/olegiv/userdesk/internal/console"
)

// ErrBadCommand is returned for a dispatch form that cannot be decoded.
var ErrBadCommand = errors.New("malformed command")

// decodeCommand reads a console command from a submitted form.
func decodeCommand(form url.Values) (console.Command, error) {
	cmd := console.Command{Name: console.CommandName(strings.TrimSpace(form.Get(FieldCmd)))}
	if cmd.Name == "" {
		return cmd, fmt.Errorf("%w: missing %s", ErrBadCommand, FieldCmd)
	}

	switch cmd.Name {
	case console.CmdOpenEdit, console.CmdOpenDelete:
		id, err := strconv.ParseInt(form.Get(FieldID), 10, 64)
		if err != nil || id <= 0 {
			return cmd, fmt.Errorf("%w: invalid %s %q", ErrBadCommand, FieldID, form.Get(FieldID))
		}
		cmd.UserID = id
	case console.CmdSearch:
		cmd.Keyword = form.Get(FieldKeyword)
	case console.CmdSubmit:
		cmd.Form = decodeFormValues(form)
	}

	return cmd, nil
}

// decodeFormValues reads the user form. Role values that are not ids are
// skipped; the controller drops ids missing from the catalog.
func decodeFormValues(form url.Values) console.FormValues {
	v := console.FormValues{
		FirstName: form.Get(FieldFirstName),
		LastName:  form.Get(FieldLastName),
		Age:       form.Get(FieldAge),
		Username:  form.Get(FieldUsername),
		Password:  form.Get(FieldPassword),
	}
	if id, err := strconv.ParseInt(form.Get(FieldUserID), 10, 64); err == nil {
		v.UserID = id
	}
	for _, raw := range form[FieldRoles] {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			v.RoleIDs = append(v.RoleIDs, id)
		}
	}
	return v
}
