package console

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/userdesk/internal/model"
)

func TestCurrentUserViewController_Load(t *testing.T) {
	api := newFakeAPI()
	c := NewCurrentUserViewController(api, model.DefaultRolePrefix, testOptions().Logger)

	v := c.Load(context.Background())

	require.NotNil(t, v.User)
	assert.Nil(t, v.Banner)
	assert.Equal(t, "alice@example.com", v.User.Username)
	assert.Equal(t, "ADMIN, USER", v.User.Roles)
}

func TestCurrentUserViewController_LoadFailure(t *testing.T) {
	api := newFakeAPI()
	api.currentErr = statusErr(401, "")
	c := NewCurrentUserViewController(api, model.DefaultRolePrefix, nil)

	v := c.Load(context.Background())

	assert.Nil(t, v.User)
	require.NotNil(t, v.Banner)
	assert.Equal(t, "Error loading user data: HTTP error! status: 401", v.Banner.Message)
	assert.True(t, v.Banner.Persistent)
	assert.Equal(t, []string{"CurrentUser"}, api.calls, "no retry")
}
