package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"friendsxi-web/pkg/services"
)

const previewKey = "preview"

// RequireSecret rejects requests whose secret query parameter does not
// match. An empty secret rejects everything.
func RequireSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		given := c.Query("secret")
		if secret == "" || subtle.ConstantTimeCompare([]byte(given), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

func previewEnabled(c *gin.Context) bool {
	on, _ := sessions.Default(c).Get(previewKey).(bool)
	return on
}

// EnablePreview turns on draft content for this browser and redirects to
// the requested article, or home.
func EnablePreview(c *gin.Context) {
	session := sessions.Default(c)
	session.Set(previewKey, true)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}

	target := "/"
	if slug := services.Slugify(c.Query("slug")); slug != "" {
		target = "/news/" + slug
	}
	c.Redirect(http.StatusTemporaryRedirect, target)
}

func ExitPreview(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(previewKey)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, "/")
}
