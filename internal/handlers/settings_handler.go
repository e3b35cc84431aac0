package handlers

import (
	"io"
	"net/http"

	"go-pos-client/internal/gateway"
	"go-pos-client/internal/schemas"
	"go-pos-client/internal/session"

	"github.com/gin-gonic/gin"
)

const maxAvatarBytes = 5 << 20

// UpdateProfile pushes the operator's name, email and role to the backend and
// mirrors the change into the local session on success.
func UpdateProfile(gw *gateway.Client, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form schemas.SettingsForm
		if err := c.ShouldBind(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		res := gw.UpdateAuthUser(c.Request.Context(), form.Name, form.Email, form.Role)
		if !res.Success {
			c.JSON(http.StatusBadGateway, gin.H{"error": fallbackMessage(res.Message, "Failed to update profile")})
			return
		}
		if err := sessions.UpdateProfile(form.Name, form.Email, form.Role); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Profile saved but local session could not be updated"})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// UploadAvatar sends the picture to the backend and stores the returned URL,
// prefixed with the backend host, in the local session.
func UploadAvatar(gw *gateway.Client, sessions *session.Manager, backendURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("avatar")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar file is required"})
			return
		}
		if fileHeader.Size > maxAvatarBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar file is too large"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read avatar file"})
			return
		}
		defer file.Close()
		contents, err := io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read avatar file"})
			return
		}

		user := sessions.Current().User
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			return
		}

		avatarURL, res := gw.UploadAvatar(c.Request.Context(), fileHeader.Filename, contents, user.ID)
		if !res.Success || avatarURL == "" {
			c.JSON(http.StatusBadGateway, gin.H{"error": fallbackMessage(res.Message, "Failed to upload avatar")})
			return
		}

		fullURL := backendURL + avatarURL
		if err := sessions.SetAvatar(fullURL); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Avatar saved but local session could not be updated"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "avatarUrl": fullURL})
	}
}

type draftRequest struct {
	Fields map[string]any `json:"fields" binding:"required"`
}

// SaveDraft persists a half-filled form so a reload brings it back.
func SaveDraft(drafts *session.Drafts) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("key")
		var req draftRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		if err := drafts.Save(key, req.Fields); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save draft"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// LoadDraft returns a previously saved form draft, if any.
func LoadDraft(drafts *session.Drafts) gin.HandlerFunc {
	return func(c *gin.Context) {
		fields, ok := drafts.Load(c.Param("key"))
		if !ok {
			c.JSON(http.StatusOK, gin.H{"found": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"found": true, "fields": fields})
	}
}

// ClearDraft removes a saved draft after the form is submitted.
func ClearDraft(drafts *session.Drafts) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := drafts.Clear(c.Param("key")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear draft"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
