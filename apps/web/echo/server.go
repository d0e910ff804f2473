package echoweb

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/colegio-app/colegio/core"
	"github.com/colegio-app/colegio/core/admin"
	"github.com/colegio-app/colegio/core/payment"
	"github.com/colegio-app/colegio/core/session"
	"github.com/colegio-app/colegio/core/student"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool
		Logger         core.Logger
		AdminSvc       *admin.Service
		StudentSvc     *student.Service
		PaymentSvc     *payment.Service
		Sessions       session.Store
		SessionTTL     time.Duration
		CookieName     string
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	debug := core.Conf.GetBool("debug")

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || core.Conf.GetBool("testMode")) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = debug

	registerAuthAPI(s.app, s.opts)

	// every route below requires an authenticated session
	authed := s.app.Group("", sessionRequired(s.opts.Sessions, s.opts.Logger, s.opts.CookieName))
	registerPanelAPI(authed, s.opts)
	registerStudentAPI(authed, s.opts)
	registerPaymentAPI(authed, s.opts)
}

// signalShutdown triggers a graceful shutdown of the Server.
func (s *server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *server) Start() {
	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := s.app.Start(s.opts.Address); err != nil && err != http.ErrServerClosed {
			s.opts.Logger.Error("server error", err)
			s.signalShutdown()
		}
	}()

	sig := <-s.shutdown
	s.opts.Logger.Info("shutting down", map[string]interface{}{"signal": sig.String()})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		s.opts.Logger.Error("graceful shutdown failed", err)
		_ = s.app.Close()
	}
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
