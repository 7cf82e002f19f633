package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authControllers "github.com/Anuragpraj/Ecommerce-Backend/controllers/auth"
	"github.com/Anuragpraj/Ecommerce-Backend/middleware"
)

// SetupAuthRoutes registers signup/signin plus the home banner.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to the E-commerce platform backend!")
	})

	r.POST("/signup", middleware.RateLimiter(), authControllers.Signup(db))
	r.POST("/signin", middleware.RateLimiter(), authControllers.Signin(db))
}
