package routes

import (
	"context"
	"net/http"

	"shiftboard/cmd/internal/auth"
	"shiftboard/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type AuthService interface {
	ResolveCallback(ctx context.Context, accessToken string) (string, apierror.ErrorResponse)
}

type DefaultAuthRoute struct {
	AuthService AuthService
	Sessions    *auth.Sessions
}

func NewAuthDefault(authService AuthService, sessions *auth.Sessions) *DefaultAuthRoute {
	return &DefaultAuthRoute{AuthService: authService, Sessions: sessions}
}

func (a *DefaultAuthRoute) GetLoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", map[string]any{
		"CSRF": c.Get("csrf"),
	})
}

// GetCallback lands the identity provider's redirect: the access
// token is exchanged for a session cookie.
func (a *DefaultAuthRoute) GetCallback(c echo.Context) error {
	accessToken := c.QueryParam("access_token")
	if accessToken == "" {
		apierr := apierror.NewMissingParamError("access_token")
		return c.Render(apierr.Code(), "error.html", map[string]any{
			"Message": apierr.Message(),
		})
	}

	token, apierr := a.AuthService.ResolveCallback(c.Request().Context(), accessToken)
	if apierr != nil {
		return c.Render(apierr.Code(), "error.html", map[string]any{
			"Message": apierr.Message(),
		})
	}

	a.Sessions.SetCookie(c, token)
	return c.Redirect(http.StatusFound, "/")
}

func (a *DefaultAuthRoute) PostLogout(c echo.Context) error {
	a.Sessions.ClearCookie(c)
	return c.Redirect(http.StatusFound, "/login")
}
