package handler

import (
	"log"
	"net/http"
	"time"

	"taskmanager/internal/middleware"
	"taskmanager/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// dateLayouts are the due-date formats accepted from clients
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func respondError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": false, "message": message})
}

// internalError logs err and answers 500 with its text
func internalError(c *gin.Context, op string, err error) {
	log.Printf("❌ %s: %v", op, err)
	respondError(c, http.StatusInternalServerError, err.Error())
}

func respondOK(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"status": true, "message": message})
}

// caller returns the authenticated user set by middleware.Protect
func caller(c *gin.Context) (repository.Viewer, bool) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return repository.Viewer{}, false
	}

	id, ok := userID.(uuid.UUID)
	if !ok {
		respondError(c, http.StatusInternalServerError, "Invalid user ID format")
		return repository.Viewer{}, false
	}
	return repository.Viewer{UserID: id, IsAdmin: c.GetBool(middleware.IsAdminKey)}, true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
