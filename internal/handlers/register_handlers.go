package handlers

import (
	"net/http"

	"github.com/SscSPs/social_media_app/cmd/docs"
	portssvc "github.com/SscSPs/social_media_app/internal/core/ports/services"
	"github.com/SscSPs/social_media_app/internal/middleware"
	"github.com/SscSPs/social_media_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// authLimit guards the routes that check passwords or send email.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	auth *middleware.Authenticator,
	authLimit gin.HandlerFunc,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	users := r.Group("/users")
	registerAuthRoutes(users, NewAuthHandler(services.Session, auth), authLimit)
	registerGoogleOAuthRoutes(users, NewGoogleOAuthHandler(services.Session, services.Identity, cfg.ClientRedirectCallback, cfg.IsProduction))
	registerUserRoutes(users, NewUserHandler(services.User, auth))

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
