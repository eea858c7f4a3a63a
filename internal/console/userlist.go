// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package console

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/userdesk/internal/backend"
	"github.com/olegiv/userdesk/internal/model"
)

// Banner texts.
const (
	MsgSaved         = "User successfully saved!"
	MsgDeleted       = "User successfully deleted!"
	MsgLoadUsersErr  = "Error loading users: "
	MsgLoadRolesErr  = "Error loading roles: "
	MsgLoadUserErr   = "Error loading user data: "
	MsgSaveUserErr   = "Error saving user: "
	MsgDeleteUserErr = "Error deleting user: "
)

// DefaultBannerTTL is how long a banner stays up when Options.BannerTTL is zero.
const DefaultBannerTTL = 5 * time.Second

var (
	// errUserNotLoaded is shown when a command names a user missing from the list.
	errUserNotLoaded = errors.New("user is not in the loaded list")
	// errFormNotOpen is shown when a form arrives after its modal was closed
	// or the console state expired.
	errFormNotOpen = errors.New("form is no longer open")
	// errConfirmNotOpen is the delete counterpart of errFormNotOpen.
	errConfirmNotOpen = errors.New("confirmation is no longer open")
)

// AdminAPI is the part of the backend the user list needs.
type AdminAPI interface {
	ListRoles(ctx context.Context) ([]model.Role, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id int64) (model.User, error)
	CreateUser(ctx context.Context, payload model.UserPayload) (model.User, error)
	UpdateUser(ctx context.Context, id int64, payload model.UserPayload) (model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// Options configures a controller.
type Options struct {
	BannerTTL time.Duration
	Logger    *slog.Logger
	Now       func() time.Time
}

func (o Options) withDefaults() Options {
	if o.BannerTTL <= 0 {
		o.BannerTTL = DefaultBannerTTL
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// UserListController drives the admin user table. It is cheap and is built
// per request around the session's State.
type UserListController struct {
	api    AdminAPI
	state  *State
	opts   Options
	logger *slog.Logger
}

// NewUserListController wraps state. A nil state starts empty.
func NewUserListController(api AdminAPI, state *State, opts Options) *UserListController {
	if state == nil {
		state = &State{}
	}
	opts = opts.withDefaults()
	return &UserListController{
		api:    api,
		state:  state,
		opts:   opts,
		logger: opts.Logger,
	}
}

// State returns the state the controller mutates.
func (c *UserListController) State() *State {
	return c.state
}

// Initialize starts from an empty state and loads roles, then users.
func (c *UserListController) Initialize(ctx context.Context) {
	c.state.reset()
	c.loadRoles(ctx)
	c.LoadUsers(ctx)
}

// loadRoles leaves the catalog empty on failure; users still load.
func (c *UserListController) loadRoles(ctx context.Context) {
	roles, err := c.api.ListRoles(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to load roles", "error", err)
		c.state.rolesLoaded(nil)
		c.fail(MsgLoadRolesErr, err)
		return
	}
	c.state.rolesLoaded(roles)
}

// LoadUsers fetches the user list and drops any search filter.
func (c *UserListController) LoadUsers(ctx context.Context) {
	c.state.beginLoading()
	users, err := c.api.ListUsers(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to load users", "error", err)
		c.state.loadFailed()
		c.fail(MsgLoadUsersErr, err)
		return
	}
	c.state.usersLoaded(users)
}

// OpenCreate opens an empty form in create mode.
func (c *UserListController) OpenCreate() {
	c.state.openCreateForm()
}

// OpenEdit fetches the user and opens the form pre-filled with it.
func (c *UserListController) OpenEdit(ctx context.Context, id int64) {
	if _, ok := c.state.findUser(id); !ok {
		c.logger.WarnContext(ctx, "edit requested for unknown user", "user_id", id)
		c.fail(MsgLoadUserErr, errUserNotLoaded)
		return
	}

	user, err := c.api.GetUser(ctx, id)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to load user", "user_id", id, "error", err)
		c.fail(MsgLoadUserErr, err)
		return
	}
	c.state.openEditForm(user)
}

// SubmitForm validates the input and saves it. Invalid input stays in the
// form with field errors and no backend call is made.
func (c *UserListController) SubmitForm(ctx context.Context, input FormValues) {
	form := c.state.Form
	if c.state.Modal != ModalForm || form == nil {
		c.logger.WarnContext(ctx, "submit without an open form", "user_id", input.UserID)
		c.restoreForm(normalize(input, c.state.Roles))
		c.fail(MsgSaveUserErr, errFormNotOpen)
		return
	}

	values := normalize(input, c.state.Roles)
	if errs := ValidateForm(form.Mode, values); errs != nil {
		c.state.formRejected(values, errs)
		return
	}

	payload := BuildPayload(values, c.state.Roles)

	var err error
	switch form.Mode {
	case FormEdit:
		if c.state.EditTarget == nil {
			c.logger.WarnContext(ctx, "edit form without a target")
			c.state.closeModal()
			return
		}
		_, err = c.api.UpdateUser(ctx, c.state.EditTarget.ID, payload)
	default:
		_, err = c.api.CreateUser(ctx, payload)
	}
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to save user", "mode", form.Mode, "error", err)
		c.state.formSubmitFailed(values)
		c.fail(MsgSaveUserErr, err)
		return
	}

	c.state.closeModal()
	c.LoadUsers(ctx)
	c.succeed(MsgSaved)
}

// restoreForm reopens the form with values that arrived while no form was
// open: in edit mode when the user is still listed, in create mode when the
// values carry no id. The password is never restored.
func (c *UserListController) restoreForm(values FormValues) {
	values.Password = ""
	if values.UserID == 0 {
		c.state.openCreateForm()
		c.state.formSubmitFailed(values)
		return
	}
	if user, ok := c.state.findUser(values.UserID); ok {
		c.state.openEditForm(user)
		c.state.formSubmitFailed(values)
	}
}

// OpenDelete stages a user for deletion and opens the confirmation.
func (c *UserListController) OpenDelete(ctx context.Context, id int64) {
	user, ok := c.state.findUser(id)
	if !ok {
		c.logger.WarnContext(ctx, "delete requested for unknown user", "user_id", id)
		c.fail(MsgDeleteUserErr, errUserNotLoaded)
		return
	}
	c.state.openDeleteConfirm(user)
}

// ConfirmDelete deletes the staged user. On failure the row and the
// confirmation stay.
func (c *UserListController) ConfirmDelete(ctx context.Context) {
	target := c.state.DeleteTarget
	if c.state.Modal != ModalConfirmDelete || target == nil {
		c.logger.WarnContext(ctx, "confirm without a staged user")
		c.fail(MsgDeleteUserErr, errConfirmNotOpen)
		return
	}

	if err := c.api.DeleteUser(ctx, target.ID); err != nil {
		c.logger.ErrorContext(ctx, "failed to delete user", "user_id", target.ID, "error", err)
		c.fail(MsgDeleteUserErr, err)
		return
	}

	c.state.closeModal()
	c.LoadUsers(ctx)
	c.succeed(MsgDeleted)
}

// Search filters the loaded list without calling the backend. A blank
// keyword clears the search.
func (c *UserListController) Search(ctx context.Context, keyword string) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		c.ClearSearch(ctx)
		return
	}
	c.state.beginLoading()
	c.state.searchApplied(keyword, FilterUsers(c.state.Users, keyword))
}

// ClearSearch drops the filter and reloads the list.
func (c *UserListController) ClearSearch(ctx context.Context) {
	c.state.searchCleared()
	c.LoadUsers(ctx)
}

// CloseModal closes whichever modal is open and resets the form.
func (c *UserListController) CloseModal() {
	c.state.closeModal()
}

// DismissBanner removes the banner.
func (c *UserListController) DismissBanner() {
	c.state.dismissBanner()
}

func (c *UserListController) succeed(message string) {
	c.state.showBanner(BannerSuccess, message, "", c.opts.Now(), c.opts.BannerTTL)
}

func (c *UserListController) fail(prefix string, err error) {
	message, detail := describe(err)
	c.state.showBanner(BannerDanger, prefix+message, detail, c.opts.Now(), c.opts.BannerTTL)
}

// describe splits err into the banner message and the raw backend body, if any.
func describe(err error) (message, detail string) {
	var se *backend.StatusError
	if errors.As(err, &se) {
		return se.Error(), strings.TrimSpace(se.Body)
	}
	return strings.TrimPrefix(err.Error(), backend.ErrRequestFailed.Error()+": "), ""
}
