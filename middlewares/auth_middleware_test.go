package middlewares

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/liyunrui/meal-prep/config"
	"github.com/liyunrui/meal-prep/utils"

	"github.com/gin-gonic/gin"
)

type fakeSessions struct {
	mu   sync.Mutex
	n    int
	data map[string]uint
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{data: make(map[string]uint)}
}

func (f *fakeSessions) Create(_ context.Context, userID uint, _ time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	sid := fmt.Sprintf("sid-%d", f.n)
	f.data[sid] = userID
	return sid, nil
}

func (f *fakeSessions) Get(_ context.Context, sid string) (uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[sid], nil
}

func (f *fakeSessions) Delete(_ context.Context, sid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, sid)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Session: config.SessionConfig{Secret: "test-secret", TTLHours: 1, RememberDays: 7},
	}
}

func request(r *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	sessions := newFakeSessions()

	r := gin.New()
	r.GET("/private", RequireAuth(sessions, cfg), func(c *gin.Context) {
		c.String(http.StatusOK, "uid:%d", c.GetUint("userID"))
	})

	// anonymous requests are redirected with a next parameter
	w := request(r, "/private")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login?next=%2Fprivate" {
		t.Fatalf("anonymous: got %d -> %q", w.Code, w.Header().Get("Location"))
	}

	// a live session resolves to the user
	sid, _ := sessions.Create(context.Background(), 7, time.Hour)
	w = request(r, "/private", &http.Cookie{Name: SessionCookie, Value: sid})
	if w.Code != http.StatusOK || w.Body.String() != "uid:7" {
		t.Fatalf("with session: got %d, body %q", w.Code, w.Body.String())
	}

	// an unknown session id does not resolve
	w = request(r, "/private", &http.Cookie{Name: SessionCookie, Value: "bogus"})
	if w.Code != http.StatusFound {
		t.Fatalf("bogus session: got %d", w.Code)
	}
}

func TestRequireAuth_RememberTokenRestoresSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	sessions := newFakeSessions()

	r := gin.New()
	r.GET("/private", RequireAuth(sessions, cfg), func(c *gin.Context) {
		c.String(http.StatusOK, "uid:%d", c.GetUint("userID"))
	})

	tok, err := utils.GenerateRememberToken(cfg.Session.Secret, 7, time.Hour)
	if err != nil {
		t.Fatalf("generate remember token: %v", err)
	}

	w := request(r, "/private", &http.Cookie{Name: RememberCookie, Value: tok})
	if w.Code != http.StatusOK || w.Body.String() != "uid:7" {
		t.Fatalf("remember token: got %d, body %q", w.Code, w.Body.String())
	}

	// a fresh session cookie must have been issued
	found := false
	for _, ck := range w.Result().Cookies() {
		if ck.Name == SessionCookie && ck.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatal("no session cookie issued from remember token")
	}

	// tampered tokens are rejected
	w = request(r, "/private", &http.Cookie{Name: RememberCookie, Value: tok + "x"})
	if w.Code != http.StatusFound {
		t.Fatalf("tampered token: got %d", w.Code)
	}
}
