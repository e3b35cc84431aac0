package middleware

import (
	"net/http"

	"go-pos-client/internal/models"
	"go-pos-client/internal/session"

	"github.com/gin-gonic/gin"
)

const sessionKey = "sessionState"

// Authenticate resolves the stored session once per request and stashes it in
// the context. It never blocks a request by itself; RequireRoles decides.
func Authenticate(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(sessionKey, sessions.Current())
		c.Next()
	}
}

// State pulls the resolved session out of the request context.
func State(c *gin.Context) session.State {
	if v, ok := c.Get(sessionKey); ok {
		if state, ok := v.(session.State); ok {
			return state
		}
	}
	return session.State{Status: session.StatusLoading}
}

// CurrentUser is nil unless the request carries an authenticated session.
func CurrentUser(c *gin.Context) *models.User {
	state := State(c)
	if state.Status != session.StatusAuthenticated {
		return nil
	}
	return state.User
}

// RequireRoles is the page gate. While the session is still unresolved it
// renders a neutral placeholder and makes no redirect decision. Anonymous
// visitors go to the login view; a logged-in user whose role is outside the
// allow set goes to their home view (storekeepers to goods receipt, everyone
// else to the point of sale). Allowed roles fall through to the page.
func RequireRoles(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := State(c)

		switch state.Status {
		case session.StatusLoading:
			c.JSON(http.StatusOK, gin.H{"status": "loading"})
			c.Abort()
			return
		case session.StatusAnonymous:
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		role := state.User.Role
		for _, r := range allowed {
			if r == role {
				c.Next()
				return
			}
		}

		c.Redirect(http.StatusFound, roleHome(role))
		c.Abort()
	}
}

// roleHome is where a user lands when a page refuses their role.
func roleHome(role string) string {
	if role == models.RoleStorekeeper {
		return "/grn"
	}
	return "/pos"
}
