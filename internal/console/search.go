// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package console

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/olegiv/userdesk/internal/model"
)

// FilterUsers returns the users whose first name, last name or username
// contains keyword, compared under Unicode case folding. Order is preserved.
func FilterUsers(users []model.User, keyword string) []model.User {
	fold := cases.Fold()
	needle := fold.String(keyword)

	matches := make([]model.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(fold.String(u.FirstName), needle) ||
			strings.Contains(fold.String(u.LastName), needle) ||
			strings.Contains(fold.String(u.Username), needle) {
			matches = append(matches, u)
		}
	}
	return matches
}
