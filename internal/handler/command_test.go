package handler

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/userdesk/internal/console"
)

func TestDecodeCommand(t *testing.T) {
	tests := []struct {
		name    string
		form    url.Values
		want    console.Command
		wantErr bool
	}{
		{"open create", url.Values{FieldCmd: {"open-create"}}, console.Command{Name: console.CmdOpenCreate}, false},
		{"open edit", url.Values{FieldCmd: {"open-edit"}, FieldID: {"7"}}, console.Command{Name: console.CmdOpenEdit, UserID: 7}, false},
		{"open delete", url.Values{FieldCmd: {"open-delete"}, FieldID: {"3"}}, console.Command{Name: console.CmdOpenDelete, UserID: 3}, false},
		{"search", url.Values{FieldCmd: {"search"}, FieldKeyword: {" smith "}}, console.Command{Name: console.CmdSearch, Keyword: " smith "}, false},
		{"unknown passes through", url.Values{FieldCmd: {"nope"}}, console.Command{Name: "nope"}, false},
		{"missing cmd", url.Values{}, console.Command{}, true},
		{"edit without id", url.Values{FieldCmd: {"open-edit"}}, console.Command{}, true},
		{"delete negative id", url.Values{FieldCmd: {"open-delete"}, FieldID: {"-1"}}, console.Command{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeCommand(tt.form)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrBadCommand))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeCommand_Submit(t *testing.T) {
	form := url.Values{
		FieldCmd:       {"submit"},
		FieldUserID:    {"4"},
		FieldFirstName: {"Ann"},
		FieldLastName:  {"Lee"},
		FieldAge:       {"33"},
		FieldUsername:  {"ann@example.com"},
		FieldPassword:  {" pw "},
		FieldRoles:     {"1", "x", "2"},
	}

	cmd, err := decodeCommand(form)

	require.NoError(t, err)
	assert.Equal(t, console.CmdSubmit, cmd.Name)
	assert.Equal(t, console.FormValues{
		UserID:    4,
		FirstName: "Ann",
		LastName:  "Lee",
		Age:       "33",
		Username:  "ann@example.com",
		Password:  " pw ",
		RoleIDs:   []int64{1, 2},
	}, cmd.Form)
}
