package handlers

import (
	"net/http"

	"go-pos-client/internal/gateway"
	"go-pos-client/internal/middleware"
	"go-pos-client/internal/schemas"
	"go-pos-client/internal/session"

	"github.com/gin-gonic/gin"
)

// Login posts the credentials to the remote gateway and, on success,
// establishes the local session. The avatar URL the backend returns is
// relative, so it gets the asset prefix here.
func Login(gw *gateway.Client, sessions *session.Manager, backendURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form schemas.LoginForm
		if err := c.ShouldBind(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		user, err := gw.Login(c.Request.Context(), form.Email, form.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		if user.AvatarURL != "" && backendURL != "" {
			user.AvatarURL = backendURL + user.AvatarURL
		}

		if err := sessions.Establish(user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to establish session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
	}
}

// Logout clears the stored identity. Always succeeds from the user's view.
func Logout(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := sessions.Logout(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// Me reports the resolved session as its tagged state.
func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		state := middleware.State(c)
		switch state.Status {
		case session.StatusAuthenticated:
			c.JSON(http.StatusOK, gin.H{"status": "authenticated", "user": state.User})
		case session.StatusAnonymous:
			c.JSON(http.StatusOK, gin.H{"status": "anonymous"})
		default:
			c.JSON(http.StatusOK, gin.H{"status": "loading"})
		}
	}
}
