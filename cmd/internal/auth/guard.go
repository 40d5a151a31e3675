package auth

import (
	"net/http"

	"shiftboard/cmd/internal/domain/entity"
	"shiftboard/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const profileContextKey = "auth.profile"

type ProfileLookup interface {
	FindBySub(sub string) (*entity.Profile, error)
}

// Guard is the one access-control gate every protected route goes
// through: no session redirects to the login page, a session resolves
// the caller's profile into the request context, and the admin variant
// turns a missing admin flag into an access-denied page.
type Guard struct {
	Sessions *Sessions
	Profiles ProfileLookup
}

func NewGuard(sessions *Sessions, profiles ProfileLookup) *Guard {
	return &Guard{Sessions: sessions, Profiles: profiles}
}

// WithProfile resolves the session into a profile, redirecting to
// /login when there is none. A missing session is a defined redirect,
// never an error.
func (g *Guard) WithProfile(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session := g.Sessions.FromRequest(c)
		if session == nil {
			return c.Redirect(http.StatusFound, "/login")
		}

		profile, err := g.Profiles.FindBySub(session.Sub)
		if err != nil {
			log.Errorf("failed to resolve profile for sub %s: %v", session.Sub, err)
			return echo.NewHTTPError(http.StatusInternalServerError)
		}

		if profile == nil {
			// Stale session for a removed member.
			g.Sessions.ClearCookie(c)
			return c.Redirect(http.StatusFound, "/login")
		}

		SetCurrentProfile(c, profile)
		return next(c)
	}
}

// RequireAdmin runs after WithProfile and denies non-admins. Unlike a
// missing session this is fatal, not a redirect.
func (g *Guard) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		profile := CurrentProfile(c)
		if profile == nil || !profile.IsAdmin {
			apierr := apierror.AccessDeniedError
			return c.Render(apierr.Code(), "error.html", map[string]any{
				"Message": apierr.Message(),
			})
		}
		return next(c)
	}
}

// SetCurrentProfile stashes the resolved profile on the request
// context for CurrentProfile to find.
func SetCurrentProfile(c echo.Context, profile *entity.Profile) {
	c.Set(profileContextKey, profile)
}

// CurrentProfile returns the profile WithProfile stashed for this
// request, or nil outside a guarded route.
func CurrentProfile(c echo.Context) *entity.Profile {
	profile, _ := c.Get(profileContextKey).(*entity.Profile)
	return profile
}
