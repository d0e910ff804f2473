package echoweb

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const flashCookieName = "colegio_flash"

// Flash is a one-time user-visible notice attached to the next page.
type Flash struct {
	Severity string `json:"severity"` // success | danger
	Message  string `json:"message"`
}

func setFlash(ctx echo.Context, severity, message string) {
	data, err := json.Marshal(Flash{Severity: severity, Message: message})
	if err != nil {
		return
	}
	ctx.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    base64.URLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
	})
}

// popFlash reads and clears the pending flash notice, if any.
func popFlash(ctx echo.Context) *Flash {
	cookie, err := ctx.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	ctx.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})

	data, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var f Flash
	if err = json.Unmarshal(data, &f); err != nil {
		return nil
	}
	return &f
}

// flashRedirect sets a flash notice and redirects; the notice shows up on
// the next rendered page.
func flashRedirect(ctx echo.Context, path, severity, message string) error {
	setFlash(ctx, severity, message)
	return ctx.Redirect(http.StatusSeeOther, path)
}
