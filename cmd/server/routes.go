package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/deenworks/qada/internal/db"
	"github.com/deenworks/qada/internal/http/api"
	authapi "github.com/deenworks/qada/internal/http/api/auth/endpoints"
	trackerapi "github.com/deenworks/qada/internal/http/api/tracker/endpoints"
	"github.com/deenworks/qada/internal/storage"
	"github.com/deenworks/qada/internal/tracker"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store, svc *tracker.Service, archive storage.Storage) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		AllowCredentials: false,
	}))

	// Session endpoints are public; they issue the tokens.
	authGroup := r.Group("/api")
	authapi.RegisterAuthRoutes(authGroup, env.SecretKey, store, svc)

	// The tracker works logged out too, so auth here only attaches the
	// session when a token is present.
	api.MountGroup(r, api.GroupConfig{
		Prefix:       "/api",
		OptionalAuth: true,
		SecretKey:    env.SecretKey,
	},
		trackerapi.TrackerModule(svc, archive),
	)
}
