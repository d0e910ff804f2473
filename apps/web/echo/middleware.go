package echoweb

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/colegio-app/colegio/core"
	"github.com/colegio-app/colegio/core/session"
)

var (
	ctxSessionKey = "session"
	ctxAdminIDKey = "adminID"

	errNoSessionInCtx = errors.New("session not found in echo.Context")
)

// sessionRequired gates every protected route: a request without a live
// session is redirected to the login page with a notice, and nothing else
// happens on its behalf.
func sessionRequired(sessions session.Store, logger core.Logger, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			cookie, err := ctx.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				logger.Warn("unauthorized access", map[string]interface{}{"path": ctx.Request().URL.Path})
				return flashRedirect(ctx, "/", "danger", "Por favor, inicia sesión primero")
			}

			sess, err := sessions.Get(ctx.Request().Context(), cookie.Value)
			if err != nil {
				if errors.Cause(err) == session.ErrNotFound {
					logger.Warn("unauthorized access", map[string]interface{}{"path": ctx.Request().URL.Path})
					return flashRedirect(ctx, "/", "danger", "Por favor, inicia sesión primero")
				}
				return errors.Wrap(err, "getting session")
			}

			ctx.Set(ctxSessionKey, sess)
			ctx.Set(ctxAdminIDKey, sess.AdminID)
			return next(ctx)
		}
	}
}

func getContextSession(ctx echo.Context) (session.Session, error) {
	if sess, ok := ctx.Get(ctxSessionKey).(session.Session); ok {
		return sess, nil
	}
	return session.Session{}, errNoSessionInCtx
}

func getContextAdminID(ctx echo.Context) (int, error) {
	if id, ok := ctx.Get(ctxAdminIDKey).(int); ok {
		return id, nil
	}
	return 0, errNoSessionInCtx
}
