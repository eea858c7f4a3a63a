package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/userdesk/internal/cache"
)

func TestCacheStore_RoundTrip(t *testing.T) {
	c := cache.NewMemoryCache(time.Hour)
	t.Cleanup(func() { _ = c.Close() })
	s := NewCacheStore(c)

	_, found, err := s.Find("tok")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Commit("tok", []byte("data"), time.Now().Add(time.Minute)))
	b, found, err := s.Find("tok")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("data"), b)

	require.NoError(t, s.Delete("tok"))
	_, found, err = s.Find("tok")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheStore_PastExpiryDeletes(t *testing.T) {
	c := cache.NewMemoryCache(time.Hour)
	t.Cleanup(func() { _ = c.Close() })
	s := NewCacheStore(c)

	require.NoError(t, s.Commit("tok", []byte("data"), time.Now().Add(time.Minute)))
	require.NoError(t, s.Commit("tok", []byte("data"), time.Now().Add(-time.Second)))

	_, found, err := s.Find("tok")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheStore_WithSessionManager(t *testing.T) {
	c := cache.NewMemoryCache(time.Hour)
	t.Cleanup(func() { _ = c.Close() })
	sm := New(NewCacheStore(c), true, 0)

	put := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sm.Put(r.Context(), "console_id", "abc")
	}))
	rec := httptest.NewRecorder()
	put.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	var got string
	get := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = sm.GetString(r.Context(), "console_id")
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	get.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "abc", got)
}
