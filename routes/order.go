package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/Anuragpraj/Ecommerce-Backend/controllers/order"
	"github.com/Anuragpraj/Ecommerce-Backend/middleware"
)

// SetupOrderRoutes registers checkout and order history endpoints.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	// Checkout acts on the caller's own cart
	r.POST("/placeorder", middleware.ValidateToken, orderControllers.PlaceOrderHandler(db))

	// Live feed of placed orders
	r.GET("/orders/ws", orderControllers.OrderWebSocketHandler)

	// Back-office views
	r.GET("/getallorders", middleware.ValidateAPIKey, orderControllers.GetAllOrdersHandler(db))
	r.GET("/orders/customer/:id", middleware.ValidateAPIKey, orderControllers.GetOrdersByCustomerHandler(db))
}
