// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"

	"github.com/olegiv/userdesk/internal/console"
	"github.com/olegiv/userdesk/internal/logging"
	"github.com/olegiv/userdesk/internal/render"
)

// ConsoleHandler serves the admin user console. The view model is kept in
// the state store under an id stored in the browser session.
type ConsoleHandler struct {
	renderer   *render.Renderer
	sm         *scs.SessionManager
	api        console.AdminAPI
	states     *console.StateStore
	opts       console.Options
	rolePrefix string
}

// ConsoleConfig holds the console handler dependencies.
type ConsoleConfig struct {
	Renderer       *render.Renderer
	SessionManager *scs.SessionManager
	API            console.AdminAPI
	States         *console.StateStore
	RolePrefix     string
	BannerTTL      time.Duration
	Logger         *slog.Logger
	Now            func() time.Time
}

// NewConsoleHandler creates a new ConsoleHandler.
func NewConsoleHandler(cfg ConsoleConfig) *ConsoleHandler {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &ConsoleHandler{
		renderer:   cfg.Renderer,
		sm:         cfg.SessionManager,
		api:        cfg.API,
		states:     cfg.States,
		rolePrefix: cfg.RolePrefix,
		opts: console.Options{
			BannerTTL: cfg.BannerTTL,
			Logger:    cfg.Logger,
			Now:       cfg.Now,
		},
	}
}

// Page handles GET /admin: a fresh console, as on a browser page load.
func (h *ConsoleHandler) Page(w http.ResponseWriter, r *http.Request) {
	ctx, id := h.consoleContext(r)

	c := console.NewUserListController(h.api, nil, h.opts)
	c.Initialize(ctx)

	if err := h.states.Save(ctx, id, c.State()); err != nil {
		logAndInternalError(w, r, "failed to save console state", "error", err)
		return
	}
	h.render(w, r, c.State())
}

// View handles GET /admin/console.
func (h *ConsoleHandler) View(w http.ResponseWriter, r *http.Request) {
	ctx, id := h.consoleContext(r)

	st, err := h.loadOrInit(ctx, id)
	if err != nil {
		logAndInternalError(w, r, "failed to load console state", "error", err)
		return
	}
	h.render(w, r, st)
}

// ViewJSON handles GET /admin/console.json.
func (h *ConsoleHandler) ViewJSON(w http.ResponseWriter, r *http.Request) {
	ctx, id := h.consoleContext(r)

	st, err := h.loadOrInit(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load console state", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSONSuccess(w, map[string]any{
		"view": console.BuildUserListView(st, h.rolePrefix, h.opts.Now()),
	})
}

// Dispatch handles POST /admin/dispatch: one command, then a redirect to the
// console view.
func (h *ConsoleHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	cmd, err := decodeCommand(r.PostForm)
	if err != nil {
		logAndHTTPError(w, r, "Bad Request", http.StatusBadRequest, "invalid console command", "error", err)
		return
	}

	ctx, id := h.consoleContext(r)

	st, err := h.loadOrInit(ctx, id)
	if err != nil {
		logAndInternalError(w, r, "failed to load console state", "error", err)
		return
	}

	c := console.NewUserListController(h.api, st, h.opts)
	if err := c.Dispatch(ctx, cmd); err != nil {
		if errors.Is(err, console.ErrUnknownCommand) {
			logAndHTTPError(w, r, "Unknown command", http.StatusBadRequest, "unknown console command", "cmd", cmd.Name)
			return
		}
		logAndInternalError(w, r, "console command failed", "cmd", cmd.Name, "error", err)
		return
	}

	if err := h.states.Save(ctx, id, c.State()); err != nil {
		logAndInternalError(w, r, "failed to save console state", "error", err)
		return
	}

	slog.DebugContext(ctx, "console command", "cmd", cmd.Name)
	redirectSeeOther(w, r, RouteConsole)
}

// loadOrInit returns the stored state, starting a fresh console when none
// is stored (first visit or expired state).
func (h *ConsoleHandler) loadOrInit(ctx context.Context, id string) (*console.State, error) {
	st, err := h.states.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if st != nil {
		return st, nil
	}

	c := console.NewUserListController(h.api, nil, h.opts)
	c.Initialize(ctx)
	if err := h.states.Save(ctx, id, c.State()); err != nil {
		return nil, err
	}
	return c.State(), nil
}

// consoleContext returns the console id of this browser session, creating
// one on first use, and a context that logs it.
func (h *ConsoleHandler) consoleContext(r *http.Request) (context.Context, string) {
	ctx := r.Context()
	id := h.sm.GetString(ctx, SessionKeyConsoleID)
	if id == "" {
		id = uuid.NewString()
		h.sm.Put(ctx, SessionKeyConsoleID, id)
	}
	return logging.WithConsoleID(ctx, id), id
}

func (h *ConsoleHandler) render(w http.ResponseWriter, r *http.Request, st *console.State) {
	view := console.BuildUserListView(st, h.rolePrefix, h.opts.Now())
	if err := h.renderer.Render(w, r, TemplateUsers, render.TemplateData{
		Title: "Admin panel",
		Nav:   "admin",
		Data:  view,
	}); err != nil {
		logAndInternalError(w, r, "failed to render console", "error", err)
	}
}
