package handler

import "github.com/gin-gonic/gin"

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("user_id")
	if !exists {
		return ""
	}
	id, _ := userID.(string)
	return id
}

// GetUserName extracts the display name from the Gin context
func GetUserName(c *gin.Context) string {
	name, exists := c.Get("user_name")
	if !exists {
		return ""
	}
	s, _ := name.(string)
	return s
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) string {
	role, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	s, _ := role.(string)
	return s
}

// staffName prefers the name sent with the request and falls back to the
// signed-in user
func staffName(c *gin.Context, given string) string {
	if given != "" {
		return given
	}
	return GetUserName(c)
}
