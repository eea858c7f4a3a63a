// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package console

import (
	"context"
	"errors"
)

// ErrUnknownCommand is returned by Dispatch for a command it does not know.
var ErrUnknownCommand = errors.New("unknown command")

// CommandName identifies a user action.
type CommandName string

// Commands understood by UserListController.Dispatch.
const (
	CmdOpenCreate    CommandName = "open-create"
	CmdOpenEdit      CommandName = "open-edit"
	CmdSubmit        CommandName = "submit"
	CmdOpenDelete    CommandName = "open-delete"
	CmdConfirmDelete CommandName = "confirm-delete"
	CmdSearch        CommandName = "search"
	CmdClearSearch   CommandName = "clear-search"
	CmdCloseModal    CommandName = "close-modal"
	CmdDismissBanner CommandName = "dismiss-banner"
	CmdReload        CommandName = "reload"
)

// Command is one user action with its arguments. Only the fields the
// command needs are read.
type Command struct {
	Name    CommandName
	UserID  int64      // open-edit, open-delete
	Keyword string     // search
	Form    FormValues // submit
}

// Dispatch runs exactly one controller method for cmd.
func (c *UserListController) Dispatch(ctx context.Context, cmd Command) error {
	switch cmd.Name {
	case CmdOpenCreate:
		c.OpenCreate()
	case CmdOpenEdit:
		c.OpenEdit(ctx, cmd.UserID)
	case CmdSubmit:
		c.SubmitForm(ctx, cmd.Form)
	case CmdOpenDelete:
		c.OpenDelete(ctx, cmd.UserID)
	case CmdConfirmDelete:
		c.ConfirmDelete(ctx)
	case CmdSearch:
		c.Search(ctx, cmd.Keyword)
	case CmdClearSearch:
		c.ClearSearch(ctx)
	case CmdCloseModal:
		c.CloseModal()
	case CmdDismissBanner:
		c.DismissBanner()
	case CmdReload:
		c.LoadUsers(ctx)
	default:
		return ErrUnknownCommand
	}
	return nil
}
