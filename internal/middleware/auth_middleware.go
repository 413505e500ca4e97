package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"taskmanager/internal/auth"
	"taskmanager/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	UserIDKey  = "user_id"
	IsAdminKey = "is_admin"
)

// TokenParser extracts the user id from a session token.
type TokenParser interface {
	ParseToken(tokenStr string) (string, error)
}

// UserLookup loads the user a token was issued to.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// Protect authenticates the request from the "token" cookie, falling back
// to an "Authorization: Bearer" header, and stores the caller's id and
// admin flag in the context.
func Protect(tokens TokenParser, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerOrCookie(c)
		if tokenStr == "" {
			unauthorized(c, "Not authorized. Try login again.")
			return
		}

		subject, err := tokens.ParseToken(tokenStr)
		if err != nil {
			unauthorized(c, "Not authorized. Try login again.")
			return
		}

		userID, err := uuid.Parse(subject)
		if err != nil {
			unauthorized(c, "Invalid user ID in token")
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			log.Printf("❌ auth: load user %s: %v", userID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to load user"})
			return
		}
		if user == nil {
			unauthorized(c, "User not found. Try login again.")
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(IsAdminKey, user.IsAdmin)
		c.Next()
	}
}

// AdminOnly rejects callers that Protect did not mark as admins.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(IsAdminKey) {
			unauthorized(c, "Not authorized as admin. Try login as admin.")
			return
		}
		c.Next()
	}
}

func bearerOrCookie(c *gin.Context) string {
	if cookie, err := c.Cookie(auth.CookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": false, "message": message})
}
