package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minhtran-ct/collab-view/internal/usecase"
)

// HeaderSessionToken carries the opaque token the access gate issued.
const HeaderSessionToken = "X-Session-Token"

const sessionContextKey = "session"

// Session resolves the token into the bound tenant store and rejects the
// request when it is missing, unknown, or expired.
func Session(sessions usecase.SessionUsecase) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(HeaderSessionToken)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
			}

			session, err := sessions.Get(token)
			if err != nil {
				return err
			}

			c.Set(sessionContextKey, session)
			return next(c)
		}
	}
}

// SessionFromContext returns the session the middleware stored, or nil on
// routes that run without it.
func SessionFromContext(c echo.Context) *usecase.Session {
	session, _ := c.Get(sessionContextKey).(*usecase.Session)
	return session
}
