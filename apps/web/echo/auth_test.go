package echoweb

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_authApi_login(t *testing.T) {
	env := setup(t)
	createAdmin(t, env.admRepo, "Maria", "Lopez", "maria@colegio.edu", "s3cret")

	tests := []struct {
		name         string
		correo       string
		password     string
		wantLocation string
		wantSession  bool
	}{
		{name: "unknown email", correo: "x@x.com", password: "wrong", wantLocation: "/"},
		{name: "wrong password", correo: "maria@colegio.edu", password: "wrong", wantLocation: "/"},
		{name: "empty password", correo: "maria@colegio.edu", password: "", wantLocation: ""},
		{name: "ok", correo: "maria@colegio.edu", password: "s3cret", wantLocation: "/panel", wantSession: true},
		{name: "ok (correo case-insensitive)", correo: "MARIA@Colegio.EDU", password: "s3cret", wantLocation: "/panel", wantSession: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{}
			form.Set("correo", tt.correo)
			form.Set("password", tt.password)
			rec := env.request(t, http.MethodPost, "/", form)

			if tt.wantLocation == "" {
				// validation failure: no redirect at all
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				return
			}
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))

			var gotSession bool
			for _, c := range rec.Result().Cookies() {
				if c.Name == testCookieName && c.Value != "" {
					gotSession = true
				}
			}
			if gotSession != tt.wantSession {
				t.Errorf("login() session cookie = %v; want %v", gotSession, tt.wantSession)
			}
		})
	}
}

func Test_authApi_sessionGuard(t *testing.T) {
	env := setup(t)
	createAdmin(t, env.admRepo, "Maria", "Lopez", "maria@colegio.edu", "s3cret")

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/panel"},
		{http.MethodGet, "/estudiantes"},
		{http.MethodGet, "/estudiantes/create"},
		{http.MethodPost, "/estudiantes/insert"},
		{http.MethodGet, "/estudiantes/edit/1"},
		{http.MethodPost, "/estudiantes/update/1"},
		{http.MethodPost, "/estudiantes/delete/1"},
		{http.MethodGet, "/payment"},
		{http.MethodGet, "/payment/assign"},
		{http.MethodPost, "/payment/assign"},
		{http.MethodPost, "/payment/confirm/1"},
	}
	for _, tt := range protected {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := env.request(t, tt.method, tt.path, nil)
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/", rec.Header().Get("Location"))
			assert.NotNil(t, flashCookie(rec), "redirect must carry a notice")
		})
	}

	// a stale cookie is not a session
	rec := env.request(t, http.MethodGet, "/panel", nil, &http.Cookie{Name: testCookieName, Value: "gone"})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	// a live one is
	cookie := env.login(t, "maria@colegio.edu", "s3cret")
	rec = env.request(t, http.MethodGet, "/panel", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "maria@colegio.edu")
}

func Test_authApi_logout(t *testing.T) {
	env := setup(t)
	createAdmin(t, env.admRepo, "Maria", "Lopez", "maria@colegio.edu", "s3cret")
	cookie := env.login(t, "maria@colegio.edu", "s3cret")

	rec := env.request(t, http.MethodPost, "/logout", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	// the session is gone server-side, not just in the browser
	rec = env.request(t, http.MethodGet, "/panel", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func Test_authApi_loginFormFlash(t *testing.T) {
	env := setup(t)

	// a failed login leaves a notice for the next page
	form := url.Values{}
	form.Set("correo", "x@x.com")
	form.Set("password", "wrong")
	rec := env.request(t, http.MethodPost, "/", form)
	flash := flashCookie(rec)
	assert.NotNil(t, flash)

	rec = env.request(t, http.MethodGet, "/", nil, flash)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "danger")
	assert.Contains(t, rec.Body.String(), "incorrectos")
}
