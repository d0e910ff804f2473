package echoweb

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/colegio-app/colegio/core/admin"
	"github.com/colegio-app/colegio/core/payment"
	"github.com/colegio-app/colegio/core/student"
	logsvc "github.com/colegio-app/colegio/services/logger"
	dummydb "github.com/colegio-app/colegio/storage/database/dummy"
	sessionstore "github.com/colegio-app/colegio/storage/session"
)

const testCookieName = "colegio_session"

type testEnv struct {
	srv      Server
	admSvc   *admin.Service
	stdSvc   *student.Service
	pmtSvc   *payment.Service
	admRepo  admin.Repository
	stdRepo  student.Repository
	pmtRepo  payment.Repository
	sessions *sessionstore.InMemStore
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	admRepo := dummydb.NewAdminRepository(db)
	stdRepo := dummydb.NewStudentRepository(db)
	pmtRepo := dummydb.NewPaymentRepository(db)

	admSvc := admin.NewService(admRepo)
	stdSvc := student.NewService(stdRepo)
	pmtSvc := payment.NewService(pmtRepo, stdSvc)
	sessions := sessionstore.NewInMemStore()

	srv := NewServer(&Options{
		Address:        ":0",
		DisableReqLogs: true,
		Logger:         logsvc.NewConsoleLogger(log.New(io.Discard, "", 0)),
		AdminSvc:       admSvc,
		StudentSvc:     stdSvc,
		PaymentSvc:     pmtSvc,
		Sessions:       sessions,
		SessionTTL:     time.Hour,
		CookieName:     testCookieName,
	})

	return &testEnv{
		srv:      srv,
		admSvc:   admSvc,
		stdSvc:   stdSvc,
		pmtSvc:   pmtSvc,
		admRepo:  admRepo,
		stdRepo:  stdRepo,
		pmtRepo:  pmtRepo,
		sessions: sessions,
	}
}

func (env *testEnv) request(t *testing.T, method, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	env.srv.ServeHTTP(rec, req)
	return rec
}

func createAdmin(t *testing.T, repo admin.Repository, nombre, apellido, correo, pwd string) admin.Admin {
	t.Helper()

	adm := admin.Admin{Nombre: nombre, Apellido: apellido, Correo: correo}
	if err := adm.SetPassword(pwd); err != nil {
		t.Fatalf("createAdmin() failed: %v", err)
	}
	adm, err := repo.UpdateOrCreateAdmin(context.Background(), adm)
	if err != nil {
		t.Fatalf("createAdmin() failed: %v", err)
	}
	return adm
}

func createStudent(t *testing.T, repo student.Repository, nombre, apellido, curso, correo, pwd string) student.Student {
	t.Helper()

	now := time.Now().UTC()
	std := student.Student{
		Nombre:    nombre,
		Apellido:  apellido,
		Curso:     curso,
		Correo:    correo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := std.SetPassword(pwd); err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	std, err := repo.CreateStudent(context.Background(), std)
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	return std
}

// login authenticates via the login endpoint and returns the session cookie.
func (env *testEnv) login(t *testing.T, correo, pwd string) *http.Cookie {
	t.Helper()

	form := url.Values{}
	form.Set("correo", correo)
	form.Set("password", pwd)
	rec := env.request(t, http.MethodPost, "/", form)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login() code = %v; want %v", rec.Code, http.StatusSeeOther)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("login() did not set a session cookie")
	return nil
}

func flashCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookieName && c.Value != "" {
			return c
		}
	}
	return nil
}
