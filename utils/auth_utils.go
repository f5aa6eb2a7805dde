package utils

import (
	"github.com/gin-gonic/gin"
)

// UserClaims is the authenticated caller identity injected by the auth
// middleware. Username and ProfilePicture are carried so handlers can
// denormalize them into comment rows without an extra lookup.
type UserClaims struct {
	UserID         string `json:"userId"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
}

type contextKey string

const UserContextKey contextKey = "user"

func GetUser(c *gin.Context) *UserClaims {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	if userClaims, ok := user.(*UserClaims); ok {
		return userClaims
	}
	return nil
}
