package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/Anuragpraj/Ecommerce-Backend/controllers/cart"
	"github.com/Anuragpraj/Ecommerce-Backend/middleware"
)

// SetupCartRoutes registers the per-user cart endpoints. All require a JWT.
func SetupCartRoutes(r *gin.Engine, db *gorm.DB) {
	cart := r.Group("/cart")
	cart.Use(middleware.ValidateToken)
	{
		cart.GET("", cartControllers.GetCart(db))
		cart.POST("/add", cartControllers.AddToCart(db))
		cart.PUT("/update", cartControllers.UpdateCartItem(db))
		cart.DELETE("/delete", cartControllers.DeleteCartItem(db))
	}
}
