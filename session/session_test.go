package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSetGetPop(t *testing.T) {
	m := NewManager()
	store := m.get("abc")

	_, ok := store.Get("klucz")
	assert.False(t, ok)

	store.Set("klucz", 42)
	v, ok := store.Get("klucz")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	v, ok = store.Pop("klucz")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = store.Get("klucz")
	assert.False(t, ok)
}

func TestManagerReturnsSameSessionForSameID(t *testing.T) {
	m := NewManager()
	m.get("abc").Set("klucz", "wartość")

	v, ok := m.get("abc").Get("klucz")
	require.True(t, ok)
	assert.Equal(t, "wartość", v)

	_, ok = m.get("inne").Get("klucz")
	assert.False(t, ok)
}

func TestManagerSweepsExpiredSessions(t *testing.T) {
	now := time.Now()
	m := NewManager()
	m.now = func() time.Time { return now }

	m.get("stara").Set("klucz", 1)

	m.now = func() time.Time { return now.Add(DefaultTTL + time.Minute) }
	_, ok := m.get("stara").Get("klucz")
	assert.False(t, ok, "expired session should have been dropped")
}

func TestMiddlewareMintsCookieAndInjectsStore(t *testing.T) {
	m := NewManager()
	var got Store
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, got)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session_id", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestMiddlewareReusesExistingCookie(t *testing.T) {
	m := NewManager()
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store := FromContext(r.Context())
		if _, ok := store.Get("licznik"); !ok {
			store.Set("licznik", 1)
			return
		}
		store.Set("licznik", 2)
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	cookie := first.Result().Cookies()[0]

	second := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	handler.ServeHTTP(second, req)

	assert.Empty(t, second.Result().Cookies(), "existing cookie should not be re-minted")
	v, _ := m.get(cookie.Value).Get("licznik")
	assert.Equal(t, 2, v)
}

func TestFlashesPopOnRead(t *testing.T) {
	m := NewManager()
	store := m.get("abc")

	assert.Empty(t, PopFlashes(store))

	AddFlash(store, FlashError, "coś poszło nie tak")
	AddFlash(store, FlashSuccess, "gotowe")

	flashes := PopFlashes(store)
	require.Len(t, flashes, 2)
	assert.Equal(t, FlashError, flashes[0].Level)
	assert.Equal(t, "coś poszło nie tak", flashes[0].Text)

	assert.Empty(t, PopFlashes(store), "flashes are one-time")
}
