package core

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// respondError sends unified error payload {"error": {"code", "message"}}.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}

// userJSON serializes a user for responses. The password hash never appears here.
func userJSON(u User) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"is_active":  u.IsActive,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// parseSkipLimit parses skip/limit query values with the service defaults.
func parseSkipLimit(skipStr, limitStr string) (int, int, error) {
	skip := 0
	limit := defaultListLimit
	if strings.TrimSpace(skipStr) != "" {
		s, err := strconv.Atoi(skipStr)
		if err != nil || s < 0 {
			return 0, 0, errors.New("skip must be a non-negative integer")
		}
		skip = s
	}
	if strings.TrimSpace(limitStr) != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l <= 0 {
			return 0, 0, errors.New("limit must be a positive integer")
		}
		if l > maxListLimit {
			l = maxListLimit
		}
		limit = l
	}
	return skip, limit, nil
}
