package auth_module

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/inethub/rrtool/database/entities"
)

func TestTokenRoundTrip(t *testing.T) {
	issued := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	token := SignToken("secret", 42, issued.Add(time.Hour))

	uid, err := VerifyToken("secret", token, issued)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if uid != 42 {
		t.Errorf("uid = %d, want 42", uid)
	}
}

func TestTokenRejections(t *testing.T) {
	issued := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	token := SignToken("secret", 42, issued.Add(time.Hour))

	tests := []struct {
		name   string
		secret string
		token  string
		now    time.Time
	}{
		{"wrong secret", "other", token, issued},
		{"expired", "secret", token, issued.Add(2 * time.Hour)},
		{"tampered uid", "secret", "99" + token[2:], issued},
		{"malformed", "secret", "garbage", issued},
		{"missing signature", "secret", "42.12345", issued},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := VerifyToken(tt.secret, tt.token, tt.now); err == nil {
				t.Error("expected rejection")
			}
		})
	}
}

func seedUser(t *testing.T, store UserStore, email, password, role string) *entities.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	user := &entities.User{Email: email, Name: "Ops User", PasswordHash: string(hash), Role: role}
	if err := store.Create(user); err != nil {
		t.Fatal(err)
	}
	return user
}

func newAuthRouter(t *testing.T) (*gin.Engine, *Handler, UserStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := NewMemoryUserStore()
	handler := NewHandler(store, "secret", time.Hour)
	r := gin.New()
	handler.RegisterRoutes(r)
	return r, handler, store
}

func postJSON(r *gin.Engine, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == SessionCookie {
			return cookie
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestLoginAndMe(t *testing.T) {
	r, _, store := newAuthRouter(t)
	seedUser(t, store, "ops@example.com", "hunter2secret", "USER")

	w := postJSON(r, "/api/auth/login", `{"email":"ops@example.com","password":"hunter2secret"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", w.Code, w.Body.String())
	}
	cookie := sessionCookie(t, w)

	me := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie)
	r.ServeHTTP(me, req)
	if me.Code != http.StatusOK {
		t.Fatalf("me status = %d", me.Code)
	}
	var resp struct {
		User struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(me.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.User.Email != "ops@example.com" || resp.User.Role != "USER" {
		t.Errorf("me response = %s", me.Body.String())
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r, _, store := newAuthRouter(t)
	seedUser(t, store, "ops@example.com", "hunter2secret", "USER")

	tests := []struct {
		name string
		body string
	}{
		{"wrong password", `{"email":"ops@example.com","password":"wrong-password"}`},
		{"unknown user", `{"email":"ghost@example.com","password":"hunter2secret"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := postJSON(r, "/api/auth/login", tt.body); w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestRequireAuthMiddleware(t *testing.T) {
	r, handler, store := newAuthRouter(t)
	user := seedUser(t, store, "ops@example.com", "hunter2secret", "USER")

	var gotUID uint
	var gotName string
	r.GET("/protected", handler.RequireAuth(), func(c *gin.Context) {
		uid, _ := c.Get("uid")
		name, _ := c.Get("userName")
		gotUID, _ = uid.(uint)
		gotName, _ = name.(string)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no cookie: status = %d, want 401", w.Code)
	}

	login := postJSON(r, "/api/auth/login", `{"email":"ops@example.com","password":"hunter2secret"}`)
	cookie := sessionCookie(t, login)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(cookie)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("with cookie: status = %d", w.Code)
	}
	if gotUID != user.ID || gotName != "Ops User" {
		t.Errorf("context identity = %d/%s", gotUID, gotName)
	}
}

func TestRequireAdmin(t *testing.T) {
	r, handler, store := newAuthRouter(t)
	seedUser(t, store, "user@example.com", "hunter2secret", "USER")
	seedUser(t, store, "admin@example.com", "hunter2secret", "ADMIN")

	admin := r.Group("/", handler.RequireAuth(), handler.RequireAdmin())
	handler.RegisterAdminRoutes(admin)

	userLogin := postJSON(r, "/api/auth/login", `{"email":"user@example.com","password":"hunter2secret"}`)
	body := `{"email":"new@example.com","name":"New","password":"longenough1"}`
	if w := postJSON(r, "/api/auth/register", body, sessionCookie(t, userLogin)); w.Code != http.StatusForbidden {
		t.Errorf("USER register status = %d, want 403", w.Code)
	}

	adminLogin := postJSON(r, "/api/auth/login", `{"email":"admin@example.com","password":"hunter2secret"}`)
	if w := postJSON(r, "/api/auth/register", body, sessionCookie(t, adminLogin)); w.Code != http.StatusCreated {
		t.Errorf("ADMIN register status = %d, body = %s", w.Code, w.Body.String())
	}

	if _, err := store.ByEmail("new@example.com"); err != nil {
		t.Errorf("registered user not persisted: %v", err)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	r, _, store := newAuthRouter(t)
	seedUser(t, store, "ops@example.com", "hunter2secret", "USER")

	login := postJSON(r, "/api/auth/login", `{"email":"ops@example.com","password":"hunter2secret"}`)
	w := postJSON(r, "/api/auth/logout", `{}`, sessionCookie(t, login))
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}
	cleared := sessionCookie(t, w)
	if cleared.Value != "" || cleared.MaxAge >= 0 {
		t.Errorf("cookie not cleared: %+v", cleared)
	}
}
