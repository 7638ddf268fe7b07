package endpoints

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/deenworks/qada/internal/db"
	"github.com/deenworks/qada/internal/http/api/auth/packets"
	"github.com/deenworks/qada/internal/http/middleware"
	"github.com/deenworks/qada/internal/tracker"
)

// PIN length is enforced here, before the record is created; the store treats
// the PIN as opaque.
const minPINLength = 4

type AccountManager struct {
	jwtSecret string
	store     db.Store
	svc       *tracker.Service
}

func accountManagementController(secret string, store db.Store, svc *tracker.Service) *AccountManager {
	return &AccountManager{jwtSecret: secret, store: store, svc: svc}
}

// mounts auth-related routes under /api/auth
func RegisterAuthRoutes(r gin.IRoutes, jwtSecret string, store db.Store, svc *tracker.Service) {
	ctl := accountManagementController(jwtSecret, store, svc)

	r.POST("/auth/register", ctl.register)
	r.POST("/auth/login", ctl.login)
	r.POST("/auth/logout", ctl.logout)
}

// POST /api/auth/register
func (a *AccountManager) register(c *gin.Context) {
	var request packets.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(request.PIN) < minPINLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PIN must be at least 4 characters"})
		return
	}

	username := strings.ToLower(request.Username)
	hashed, err := middleware.HashPIN(request.PIN)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, please try again"})
		log.Error().Err(err).Msg("failed to hash PIN")
		return
	}

	if _, err := a.store.CreateAccount(c, username, hashed); err != nil {
		if errors.Is(err, db.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, please try again"})
		log.Error().Err(err).Str("username", username).Msg("could not create account")
		return
	}

	token, err := middleware.GenerateJWT(username, a.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, please try again"})
		log.Error().Err(err).Str("username", username).Msg("could not generate JWT")
		return
	}

	// New account: the first remote save pushes whatever is on this device.
	a.svc.StartSession(c, username)

	c.JSON(http.StatusCreated, packets.SessionResponse{Token: token, Username: username})
}

// POST /api/auth/login
func (a *AccountManager) login(c *gin.Context) {
	var request packets.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	username := strings.ToLower(request.Username)
	account, err := a.store.GetAccountByUsername(c, username)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, please try again"})
		log.Error().Err(err).Str("username", username).Msg("could not load account")
		return
	}
	if !middleware.CheckPIN(account.HashedPIN, request.PIN) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong PIN"})
		return
	}

	token, err := middleware.GenerateJWT(username, a.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, please try again"})
		log.Error().Err(err).Str("username", username).Msg("could not generate JWT")
		return
	}

	// The remote record, when present, replaces local state wholesale.
	a.svc.StartSession(c, username)

	c.JSON(http.StatusOK, packets.SessionResponse{Token: token, Username: username})
}

// POST /api/auth/logout
func (a *AccountManager) logout(c *gin.Context) {
	a.svc.EndSession()
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
