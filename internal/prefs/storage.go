package prefs

import (
	"net/http"
	"sync"
	"time"
)

// MemoryStorage keeps values in a map.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStorage) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// CookieMaxAge is how long preference cookies are kept by the browser.
const CookieMaxAge = 365 * 24 * time.Hour

// CookieStorage persists preferences as browser cookies, the server side
// counterpart of local storage. Writes are visible to later Gets on the
// same request.
type CookieStorage struct {
	r      *http.Request
	w      http.ResponseWriter
	secure bool
	set    map[string]string
}

func NewCookieStorage(w http.ResponseWriter, r *http.Request, secure bool) *CookieStorage {
	return &CookieStorage{r: r, w: w, secure: secure, set: make(map[string]string)}
}

func (c *CookieStorage) Get(key string) (string, bool) {
	if v, ok := c.set[key]; ok {
		return v, true
	}
	ck, err := c.r.Cookie(key)
	if err != nil {
		return "", false
	}
	return ck.Value, true
}

func (c *CookieStorage) Set(key, value string) {
	c.set[key] = value
	http.SetCookie(c.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		MaxAge:   int(CookieMaxAge / time.Second),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
