package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "testsecret"

func echoSession(c *gin.Context) {
	username, ok := GetSessionUser(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"session": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": username})
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("Alice", testSecret)
	require.NoError(t, err)

	username, err := parseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "alice", username, "sub claim carries the lowercased username")
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateJWT("alice", testSecret)
	require.NoError(t, err)

	_, err = parseToken(token, "othersecret")
	assert.Error(t, err)
}

func TestJWTMiddlewareRejectsMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTMiddleware(testSecret), echoSession)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddlewareAcceptsBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTMiddleware(testSecret), echoSession)

	token, _ := GenerateJWT("bob", testSecret)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bob")
}

func TestOptionalJWTMiddlewarePassesWithoutToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/open", OptionalJWTMiddleware(testSecret), echoSession)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/open", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "null")
}

func TestHashAndCheckPIN(t *testing.T) {
	hash, err := HashPIN("1234")
	require.NoError(t, err)
	assert.True(t, CheckPIN(hash, "1234"))
	assert.False(t, CheckPIN(hash, "4321"))
}
