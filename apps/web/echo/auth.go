package echoweb

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/colegio-app/colegio/core"
	"github.com/colegio-app/colegio/core/admin"
	"github.com/colegio-app/colegio/core/session"
)

type authApi struct {
	svc        *admin.Service
	sessions   session.Store
	logger     core.Logger
	ttl        time.Duration
	cookieName string
}

func registerAuthAPI(e *echo.Echo, opts *Options) {
	api := authApi{
		svc:        opts.AdminSvc,
		sessions:   opts.Sessions,
		logger:     opts.Logger,
		ttl:        opts.SessionTTL,
		cookieName: opts.CookieName,
	}

	e.GET("/", api.loginForm)
	e.POST("/", api.login)
	e.POST("/logout", api.logout)
}

func registerPanelAPI(g *echo.Group, opts *Options) {
	api := authApi{svc: opts.AdminSvc, logger: opts.Logger}
	g.GET("/panel", api.panel)
}

// LoginRequest is the login form payload.
type LoginRequest struct {
	Correo   string `json:"correo" form:"correo" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (lr *LoginRequest) Validate() error {
	lr.Correo = core.CleanString(lr.Correo, true /* lower */)
	return core.Validate.Struct(lr)
}

// Handlers

func (api *authApi) loginForm(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"flash": popFlash(ctx)})
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	adm, err := api.svc.Authenticate(ctx.Request().Context(), data.Correo, data.Password)
	if err != nil {
		if errors.Cause(err) == admin.ErrAuthenticationFailed {
			// generic notice: never reveal which part failed
			api.logger.Warn("failed login", map[string]interface{}{"correo": data.Correo})
			return flashRedirect(ctx, "/", "danger", "Correo o contraseña incorrectos")
		}
		return errors.Wrap(err, "authenticating")
	}

	sess := session.Session{
		ID:        uuid.NewString(),
		AdminID:   adm.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err = api.sessions.Save(ctx.Request().Context(), sess, api.ttl); err != nil {
		return errors.Wrap(err, "saving session")
	}
	ctx.SetCookie(&http.Cookie{
		Name:     api.cookieName,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(api.ttl.Seconds()),
		HttpOnly: true,
	})

	api.logger.Info("successful login", adm)
	return flashRedirect(ctx, "/panel", "success", "Inicio de sesión exitoso")
}

func (api *authApi) logout(ctx echo.Context) error {
	cookie, err := ctx.Cookie(api.cookieName)
	if err == nil && cookie.Value != "" {
		if err = api.sessions.Delete(ctx.Request().Context(), cookie.Value); err != nil {
			return errors.Wrap(err, "deleting session")
		}
	}
	ctx.SetCookie(&http.Cookie{
		Name:     api.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})
	return flashRedirect(ctx, "/", "success", "Sesión cerrada")
}

func (api *authApi) panel(ctx echo.Context) error {
	id, err := getContextAdminID(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context admin")
	}
	adm, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting administrator")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"administrador": adm, "flash": popFlash(ctx)})
}
