// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package console

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/olegiv/userdesk/internal/model"
)

// Field error messages.
const (
	MsgRequired         = "This field is required"
	MsgAgeNumber        = "Age must be a whole number"
	MsgRoleRequired     = "At least one role must be selected"
	MsgPasswordRequired = "Password is required for new users"
)

// userForm is the validated shape of the user form. Field names in errors
// come from the form tag so they line up with the DOM ids.
type userForm struct {
	Mode      FormMode `form:"mode"`
	FirstName string   `form:"firstName" validate:"required"`
	LastName  string   `form:"lastName" validate:"required"`
	Age       string   `form:"age" validate:"required,number"`
	Username  string   `form:"username" validate:"required"`
	Password  string   `form:"password" validate:"required_if=Mode create"`
	Roles     []int64  `form:"roles" validate:"min=1"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// normalize trims every text field and keeps only role ids present in the
// catalog. A blank password counts as no password.
func normalize(values FormValues, catalog []model.Role) FormValues {
	values.FirstName = strings.TrimSpace(values.FirstName)
	values.LastName = strings.TrimSpace(values.LastName)
	values.Age = strings.TrimSpace(values.Age)
	values.Username = strings.TrimSpace(values.Username)
	values.Password = strings.TrimSpace(values.Password)

	known := make([]int64, 0, len(values.RoleIDs))
	for _, id := range values.RoleIDs {
		if _, ok := model.FindRole(catalog, id); ok && !containsID(known, id) {
			known = append(known, id)
		}
	}
	values.RoleIDs = known
	return values
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// ValidateForm checks the presence rules and the age parse. It returns nil when
// the values may be submitted.
func ValidateForm(mode FormMode, values FormValues) FieldErrors {
	in := userForm{
		Mode:      mode,
		FirstName: values.FirstName,
		LastName:  values.LastName,
		Age:       values.Age,
		Username:  values.Username,
		Password:  values.Password,
		Roles:     values.RoleIDs,
	}

	errs := FieldErrors{}
	var verrs validator.ValidationErrors
	if err := validate.Struct(in); errors.As(err, &verrs) {
		for _, fe := range verrs {
			if _, seen := errs[fe.Field()]; seen {
				continue
			}
			errs[fe.Field()] = fieldMessage(fe)
		}
	}

	if _, bad := errs["age"]; !bad && values.Age != "" {
		if _, err := strconv.Atoi(values.Age); err != nil {
			errs["age"] = MsgAgeNumber
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "number":
		return MsgAgeNumber
	case "min":
		return MsgRoleRequired
	case "required_if":
		return MsgPasswordRequired
	default:
		return MsgRequired
	}
}

// BuildPayload converts validated values into a backend request body. Roles
// are resolved against the catalog; unknown ids are dropped.
func BuildPayload(values FormValues, catalog []model.Role) model.UserPayload {
	age, _ := strconv.Atoi(values.Age)

	roles := make([]model.Role, 0, len(values.RoleIDs))
	for _, id := range values.RoleIDs {
		if r, ok := model.FindRole(catalog, id); ok {
			roles = append(roles, r)
		}
	}

	return model.UserPayload{
		FirstName: values.FirstName,
		LastName:  values.LastName,
		Age:       age,
		Username:  values.Username,
		Password:  values.Password,
		Roles:     roles,
	}
}

func formatAge(age int) string {
	return strconv.Itoa(age)
}
