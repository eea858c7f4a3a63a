package console

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/olegiv/userdesk/internal/backend"
	"github.com/olegiv/userdesk/internal/model"
)

var (
	roleAdmin = model.Role{ID: 1, Name: "ROLE_ADMIN"}
	roleUser  = model.Role{ID: 2, Name: "ROLE_USER"}

	alice = model.User{ID: 1, FirstName: "Alice", LastName: "Smith", Age: 30, Username: "alice@example.com", Roles: []model.Role{roleAdmin, roleUser}}
	bob   = model.User{ID: 2, FirstName: "Bob", LastName: "Jones", Age: 41, Username: "bob@example.com", Roles: []model.Role{roleUser}}
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

// fakeAPI is an in-memory AdminAPI and CurrentUserAPI that records calls.
type fakeAPI struct {
	roles   []model.Role
	users   []model.User
	current model.User

	rolesErr   error
	listErr    error
	getErr     error
	saveErr    error
	deleteErr  error
	currentErr error

	calls   []string
	created []model.UserPayload
	updated map[int64]model.UserPayload
	deleted []int64
	nextID  int64
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		roles:   []model.Role{roleAdmin, roleUser},
		users:   []model.User{alice, bob},
		current: alice,
		updated: map[int64]model.UserPayload{},
		nextID:  10,
	}
}

func (f *fakeAPI) ListRoles(context.Context) ([]model.Role, error) {
	f.calls = append(f.calls, "ListRoles")
	return f.roles, f.rolesErr
}

func (f *fakeAPI) ListUsers(context.Context) ([]model.User, error) {
	f.calls = append(f.calls, "ListUsers")
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.User, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *fakeAPI) GetUser(_ context.Context, id int64) (model.User, error) {
	f.calls = append(f.calls, "GetUser")
	if f.getErr != nil {
		return model.User{}, f.getErr
	}
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, &backend.StatusError{StatusCode: 404}
}

func (f *fakeAPI) CreateUser(_ context.Context, p model.UserPayload) (model.User, error) {
	f.calls = append(f.calls, "CreateUser")
	if f.saveErr != nil {
		return model.User{}, f.saveErr
	}
	f.created = append(f.created, p)
	u := model.User{ID: f.nextID, FirstName: p.FirstName, LastName: p.LastName, Age: p.Age, Username: p.Username, Roles: p.Roles}
	f.nextID++
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeAPI) UpdateUser(_ context.Context, id int64, p model.UserPayload) (model.User, error) {
	f.calls = append(f.calls, "UpdateUser")
	if f.saveErr != nil {
		return model.User{}, f.saveErr
	}
	p.ID = id
	f.updated[id] = p
	for i, u := range f.users {
		if u.ID == id {
			f.users[i] = model.User{ID: id, FirstName: p.FirstName, LastName: p.LastName, Age: p.Age, Username: p.Username, Roles: p.Roles}
		}
	}
	return f.users[0], nil
}

func (f *fakeAPI) DeleteUser(_ context.Context, id int64) error {
	f.calls = append(f.calls, "DeleteUser")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	kept := f.users[:0]
	for _, u := range f.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	f.users = kept
	return nil
}

func (f *fakeAPI) CurrentUser(context.Context) (model.User, error) {
	f.calls = append(f.calls, "CurrentUser")
	return f.current, f.currentErr
}

func (f *fakeAPI) resetCalls() {
	f.calls = nil
}

func testOptions() Options {
	return Options{
		BannerTTL: 5 * time.Second,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:       func() time.Time { return fixedNow },
	}
}

func newLoadedController(api *fakeAPI) *UserListController {
	c := NewUserListController(api, nil, testOptions())
	c.Initialize(context.Background())
	api.resetCalls()
	return c
}

func statusErr(code int, body string) error {
	return &backend.StatusError{Method: "GET", Path: "/", StatusCode: code, Body: body}
}
