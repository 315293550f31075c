package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

const testCSRFSecret = "csrf-test-secret-for-admin-console"

func setupCSRFRouter() *gin.Engine {
	r := gin.New()
	r.Use(CSRF(testCSRFSecret))
	r.GET("/coupons/new", func(c *gin.Context) {
		c.String(http.StatusOK, GetCSRFToken(c))
	})
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.POST("/coupons", ok)
	r.PUT("/products/1", ok)
	r.PATCH("/users/1/status", ok)
	r.DELETE("/coupons/1", ok)
	return r
}

// fetchCSRFToken does a GET and returns the token from both the body and the
// admin_csrf cookie.
func fetchCSRFToken(t *testing.T, r *gin.Engine) (token, cookie string) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/coupons/new", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("GET /coupons/new: status = %d, want 200", w.Code)
	}
	token = w.Body.String()
	for _, c := range w.Result().Cookies() {
		if c.Name == "admin_csrf" {
			cookie = c.Value
			break
		}
	}
	if cookie == "" {
		t.Fatal("expected admin_csrf cookie to be set")
	}
	return token, cookie
}

func postForm(r *gin.Engine, path, fieldToken, cookieToken string) *httptest.ResponseRecorder {
	form := url.Values{}
	if fieldToken != "" {
		form.Set("_csrf_token", fieldToken)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookieToken != "" {
		req.AddCookie(&http.Cookie{Name: "admin_csrf", Value: cookieToken})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCSRF_GET_IssuesSignedCookie(t *testing.T) {
	r := setupCSRFRouter()
	token, cookie := fetchCSRFToken(t, r)

	if token == "" {
		t.Error("expected non-empty token in context")
	}
	if cookie != token {
		t.Errorf("cookie %q != context token %q", cookie, token)
	}
	if !validToken(token, testCSRFSecret) {
		t.Error("issued token fails signature check")
	}
}

func TestCSRF_GET_CookieAttributes(t *testing.T) {
	r := setupCSRFRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/coupons/new", nil))

	var found *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "admin_csrf" {
			found = c
			break
		}
	}
	if found == nil {
		t.Fatal("admin_csrf cookie not found")
	}
	if found.HttpOnly {
		t.Error("HttpOnly = true, want false (templates read the token)")
	}
	if found.Path != "/" {
		t.Errorf("Path = %q, want /", found.Path)
	}
	if found.SameSite != http.SameSiteStrictMode {
		t.Errorf("SameSite = %v, want Strict", found.SameSite)
	}
}

func TestCSRF_GET_ValidCookieIsReused(t *testing.T) {
	r := setupCSRFRouter()
	_, cookie := fetchCSRFToken(t, r)

	req := httptest.NewRequest(http.MethodGet, "/coupons/new", nil)
	req.AddCookie(&http.Cookie{Name: "admin_csrf", Value: cookie})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if body := w.Body.String(); body != cookie {
		t.Errorf("token = %q, want reused %q", body, cookie)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "admin_csrf" {
			t.Error("valid cookie should not be replaced")
		}
	}
}

func TestCSRF_GET_GarbageCookieIsReplaced(t *testing.T) {
	r := setupCSRFRouter()
	req := httptest.NewRequest(http.MethodGet, "/coupons/new", nil)
	req.AddCookie(&http.Cookie{Name: "admin_csrf", Value: "garbage"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var replaced bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "admin_csrf" {
			replaced = true
			if !validToken(c.Value, testCSRFSecret) {
				t.Error("replacement token fails signature check")
			}
		}
	}
	if !replaced {
		t.Error("expected a fresh admin_csrf cookie after a garbage one")
	}
}

func TestCSRF_POST_ValidFormField(t *testing.T) {
	r := setupCSRFRouter()
	_, cookie := fetchCSRFToken(t, r)

	if w := postForm(r, "/coupons", cookie, cookie); w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
}

func TestCSRF_POST_ValidHeader(t *testing.T) {
	r := setupCSRFRouter()
	_, cookie := fetchCSRFToken(t, r)

	req := httptest.NewRequest(http.MethodPost, "/coupons", nil)
	req.Header.Set("X-CSRF-Token", cookie)
	req.AddCookie(&http.Cookie{Name: "admin_csrf", Value: cookie})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
}

func TestCSRF_POST_Rejections(t *testing.T) {
	r := setupCSRFRouter()
	_, cookie := fetchCSRFToken(t, r)

	nonce, _, _ := strings.Cut(mustGenerateToken(testCSRFSecret), ".")
	tampered := nonce + "." + signNonce(nonce, "wrong-secret")

	tests := []struct {
		name        string
		fieldToken  string
		cookieToken string
	}{
		{name: "no cookie", fieldToken: cookie, cookieToken: ""},
		{name: "no request token", fieldToken: "", cookieToken: cookie},
		{name: "unsigned request token", fieldToken: "forged", cookieToken: cookie},
		{name: "matching but unsigned pair", fieldToken: "forged", cookieToken: "forged"},
		{name: "wrong-secret signature on both", fieldToken: tampered, cookieToken: tampered},
		{name: "two different valid tokens", fieldToken: mustGenerateToken(testCSRFSecret), cookieToken: cookie},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := postForm(r, "/coupons", tt.fieldToken, tt.cookieToken); w.Code != http.StatusForbidden {
				t.Fatalf("status = %d, want 403", w.Code)
			}
		})
	}
}

func TestCSRF_OtherMutatingMethods(t *testing.T) {
	r := setupCSRFRouter()
	_, cookie := fetchCSRFToken(t, r)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPut, "/products/1"},
		{http.MethodPatch, "/users/1/status"},
		{http.MethodDelete, "/coupons/1"},
	} {
		t.Run(tc.method, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			req.Header.Set("X-CSRF-Token", cookie)
			req.AddCookie(&http.Cookie{Name: "admin_csrf", Value: cookie})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("%s %s: status = %d, want 200", tc.method, tc.path, w.Code)
			}

			// Same request without the token is rejected.
			req = httptest.NewRequest(tc.method, tc.path, nil)
			req.AddCookie(&http.Cookie{Name: "admin_csrf", Value: cookie})
			w = httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusForbidden {
				t.Fatalf("%s %s without token: status = %d, want 403", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestCSRF_EmptySecret_FailsClosed(t *testing.T) {
	r := gin.New()
	r.Use(CSRF("   "))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestGetCSRFToken(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := GetCSRFToken(c); got != "" {
		t.Errorf("GetCSRFToken on empty context = %q, want \"\"", got)
	}
	c.Set("CSRFToken", "my-token")
	if got := GetCSRFToken(c); got != "my-token" {
		t.Errorf("GetCSRFToken = %q, want my-token", got)
	}
}

func TestValidToken(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		secret string
		want   bool
	}{
		{"valid token", mustGenerateToken(testCSRFSecret), testCSRFSecret, true},
		{"wrong secret", mustGenerateToken(testCSRFSecret), "wrong-secret", false},
		{"empty token", "", testCSRFSecret, false},
		{"no dot separator", "abcdef1234", testCSRFSecret, false},
		{"empty nonce", "." + signNonce("", testCSRFSecret), testCSRFSecret, false},
		{"empty signature", "abcdef.", testCSRFSecret, false},
		{"tampered nonce", "tampered." + signNonce("original", testCSRFSecret), testCSRFSecret, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validToken(tt.token, tt.secret); got != tt.want {
				t.Errorf("validToken() = %v, want %v", got, tt.want)
			}
		})
	}
}

// The JSON API groups are registered without this middleware; mutating calls
// there must not be blocked.
func TestCSRF_NotAppliedToAPIGroup(t *testing.T) {
	r := gin.New()

	pages := r.Group("/")
	pages.Use(CSRF(testCSRFSecret))
	pages.POST("/coupons", func(c *gin.Context) {
		c.String(http.StatusOK, "page ok")
	})

	api := r.Group("/api/v1")
	api.POST("/coupons", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "api ok"})
	})
	api.DELETE("/coupons/1", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "api ok"})
	})

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/coupons"},
		{http.MethodDelete, "/api/v1/coupons/1"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s %s: status = %d, want 200", tc.method, tc.path, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/coupons", nil))
	if w.Code != http.StatusForbidden {
		t.Errorf("POST /coupons without token: status = %d, want 403", w.Code)
	}
}

func mustGenerateToken(secret string) string {
	token, err := generateToken(secret)
	if err != nil {
		panic(err)
	}
	return token
}
