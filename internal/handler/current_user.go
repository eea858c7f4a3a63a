// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/userdesk/internal/console"
	"github.com/olegiv/userdesk/internal/render"
)

// CurrentUserHandler serves the read-only current user page.
type CurrentUserHandler struct {
	renderer   *render.Renderer
	controller *console.CurrentUserViewController
}

// NewCurrentUserHandler creates a new CurrentUserHandler.
func NewCurrentUserHandler(renderer *render.Renderer, controller *console.CurrentUserViewController) *CurrentUserHandler {
	return &CurrentUserHandler{renderer: renderer, controller: controller}
}

// Show handles GET /user.
func (h *CurrentUserHandler) Show(w http.ResponseWriter, r *http.Request) {
	view := h.controller.Load(r.Context())

	if err := h.renderer.Render(w, r, TemplateCurrentUser, render.TemplateData{
		Title: "User information",
		Nav:   "user",
		Data:  view,
	}); err != nil {
		logAndInternalError(w, r, "failed to render current user", "error", err)
	}
}
