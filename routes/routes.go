package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up Auth, Product, Cart
// and Order route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public auth routes (rate-limited)
	SetupAuthRoutes(r, db)

	// Catalog routes (mutation behind admin API key)
	SetupProductRoutes(r, db)

	// Cart routes (JWT-protected)
	SetupCartRoutes(r, db)

	// Order routes (placement JWT-protected, listing behind admin API key)
	SetupOrderRoutes(r, db)
}
