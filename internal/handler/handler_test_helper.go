package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/userdesk/internal/backend"
	"github.com/olegiv/userdesk/internal/cache"
	"github.com/olegiv/userdesk/internal/console"
	"github.com/olegiv/userdesk/internal/model"
	"github.com/olegiv/userdesk/internal/render"
	"github.com/olegiv/userdesk/web"
)

// fakeBackend is an in-memory admin REST backend.
type fakeBackend struct {
	mu       sync.Mutex
	roles    []model.Role
	users    []model.User
	nextID   int64
	failList bool
	failMe   bool
	requests []string
}

func newFakeBackend() *fakeBackend {
	admin := model.Role{ID: 1, Name: "ROLE_ADMIN"}
	user := model.Role{ID: 2, Name: "ROLE_USER"}
	return &fakeBackend{
		roles: []model.Role{admin, user},
		users: []model.User{
			{ID: 1, FirstName: "Alice", LastName: "Smith", Age: 30, Username: "alice@example.com", Roles: []model.Role{admin}},
			{ID: 2, FirstName: "Bob", LastName: "Jones", Age: 41, Username: "bob@example.com", Roles: []model.Role{user}},
		},
		nextID: 3,
	}
}

func (f *fakeBackend) record(r *http.Request) {
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
}

func (f *fakeBackend) countRequests(entry string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.requests {
		if e == entry {
			n++
		}
	}
	return n
}

func (f *fakeBackend) handler() http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.record(req)
			next.ServeHTTP(w, req)
		})
	})

	r.Head("/", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get(backend.PathRoles, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, f.roles)
	})
	r.Get(backend.PathUsers, func(w http.ResponseWriter, _ *http.Request) {
		if f.failList {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, f.users)
	})
	r.Post(backend.PathUsers, func(w http.ResponseWriter, req *http.Request) {
		var p model.UserPayload
		if err := json.NewDecoder(req.Body).Decode(&p); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		u := model.User{ID: f.nextID, FirstName: p.FirstName, LastName: p.LastName, Age: p.Age, Username: p.Username, Roles: p.Roles}
		f.nextID++
		f.users = append(f.users, u)
		writeJSON(w, http.StatusOK, u)
	})
	r.Get(backend.PathUsers+"/{id}", func(w http.ResponseWriter, req *http.Request) {
		if i := f.indexOf(req); i >= 0 {
			writeJSON(w, http.StatusOK, f.users[i])
			return
		}
		http.NotFound(w, req)
	})
	r.Put(backend.PathUsers+"/{id}", func(w http.ResponseWriter, req *http.Request) {
		i := f.indexOf(req)
		if i < 0 {
			http.NotFound(w, req)
			return
		}
		var p model.UserPayload
		if err := json.NewDecoder(req.Body).Decode(&p); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.users[i] = model.User{ID: f.users[i].ID, FirstName: p.FirstName, LastName: p.LastName, Age: p.Age, Username: p.Username, Roles: p.Roles}
		writeJSON(w, http.StatusOK, f.users[i])
	})
	r.Delete(backend.PathUsers+"/{id}", func(w http.ResponseWriter, req *http.Request) {
		i := f.indexOf(req)
		if i < 0 {
			http.NotFound(w, req)
			return
		}
		f.users = append(f.users[:i], f.users[i+1:]...)
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get(backend.PathCurrentUser, func(w http.ResponseWriter, _ *http.Request) {
		if f.failMe {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, f.users[0])
	})
	return r
}

func (f *fakeBackend) indexOf(req *http.Request) int {
	id, err := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
	if err != nil {
		return -1
	}
	for i, u := range f.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// testApp is a console server wired to a fake backend.
type testApp struct {
	server  *httptest.Server
	backend *fakeBackend
	client  *http.Client
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	fb := newFakeBackend()
	backendSrv := httptest.NewServer(fb.handler())
	t.Cleanup(backendSrv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	api := backend.New(backend.Options{BaseURL: backendSrv.URL, Logger: logger})

	renderer, err := render.New(render.Config{TemplatesFS: web.Templates})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	sm := scs.New()
	states := console.NewStateStore(cache.NewMemoryCache(time.Minute), time.Minute)

	ch := NewConsoleHandler(ConsoleConfig{
		Renderer:       renderer,
		SessionManager: sm,
		API:            api,
		States:         states,
		RolePrefix:     model.DefaultRolePrefix,
		BannerTTL:      time.Minute,
		Logger:         logger,
	})
	uh := NewCurrentUserHandler(renderer, console.NewCurrentUserViewController(api, model.DefaultRolePrefix, logger))

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	r.Get(RouteAdmin, ch.Page)
	r.Get(RouteConsole, ch.View)
	r.Get(RouteConsoleJSON, ch.ViewJSON)
	r.Post(RouteDispatch, ch.Dispatch)
	r.Get(RouteUser, uh.Show)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &testApp{server: srv, backend: fb, client: &http.Client{Jar: jar}}
}

// newTestAppClient returns a second browser against the same server.
func newTestAppClient(t *testing.T, a *testApp) *testApp {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &testApp{server: a.server, backend: a.backend, client: &http.Client{Jar: jar}}
}

// assertStatus checks an HTTP status code.
func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}
