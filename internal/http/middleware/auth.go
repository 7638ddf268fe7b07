package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// is returned when username/PIN don't match.
var ErrInvalidCredentials = errors.New("invalid username or PIN")

// uses bcrypt to hash a plaintext PIN.
func HashPIN(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// compares a bcrypt hash with the plaintext PIN.
func CheckPIN(hash, plain string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	return err == nil
}

// retrieves the session username from gin context (after JWTMiddleware has run).
func GetSessionUser(c *gin.Context) (string, bool) {
	u, exists := c.Get("sessionUser")
	if !exists {
		return "", false
	}
	username, ok := u.(string)
	return username, ok
}
