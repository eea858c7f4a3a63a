// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package console

import (
	"context"
	"log/slog"

	"github.com/olegiv/userdesk/internal/model"
)

// CurrentUserAPI is the part of the backend the profile page needs.
type CurrentUserAPI interface {
	CurrentUser(ctx context.Context) (model.User, error)
}

// CurrentUserViewController renders the signed-in user's own record.
type CurrentUserViewController struct {
	api        CurrentUserAPI
	rolePrefix string
	logger     *slog.Logger
}

// NewCurrentUserViewController creates a controller. An empty prefix is kept
// as is; pass model.DefaultRolePrefix for the usual behaviour.
func NewCurrentUserViewController(api CurrentUserAPI, rolePrefix string, logger *slog.Logger) *CurrentUserViewController {
	if logger == nil {
		logger = slog.Default()
	}
	return &CurrentUserViewController{api: api, rolePrefix: rolePrefix, logger: logger}
}

// Load fetches the current user. A failure yields a persistent banner and
// no retry.
func (c *CurrentUserViewController) Load(ctx context.Context) CurrentUserView {
	user, err := c.api.CurrentUser(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to load current user", "error", err)
		message, detail := describe(err)
		return CurrentUserView{
			Banner: &BannerView{
				Kind:       string(BannerDanger),
				Message:    MsgLoadUserErr + message,
				Detail:     detail,
				Persistent: true,
			},
		}
	}

	row := newUserRow(user, c.rolePrefix)
	return CurrentUserView{User: &row}
}
