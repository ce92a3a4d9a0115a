package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts every endpoint on r. When guard is non-nil the
// profile routes require a bearer token for the same user.
func RegisterRoutes(r gin.IRouter, health *HealthHandler, auth *AuthHandler, users *UserHandler, guard gin.HandlerFunc) {
	r.GET("/", health.Root)
	r.GET("/health", health.Health)

	r.POST("/register", users.Register)
	r.POST("/login", auth.Login)

	profile := r.Group("/user")
	if guard != nil {
		profile.Use(guard)
	}
	profile.GET("/:id", users.GetProfile)
	profile.PUT("/:id", users.UpdateProfile)
}
