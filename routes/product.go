package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productcontroller "github.com/Anuragpraj/Ecommerce-Backend/controllers/product"
	"github.com/Anuragpraj/Ecommerce-Backend/middleware"
)

// SetupProductRoutes registers the catalog endpoints. Browsing is public;
// mutation and export require the admin API key.
func SetupProductRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/products", productcontroller.GetProducts(db))

	admin := r.Group("/")
	admin.Use(middleware.ValidateAPIKey)
	{
		admin.POST("/addproduct", productcontroller.AddProduct(db))
		admin.PUT("/updateproduct/:id", productcontroller.UpdateProduct(db))
		admin.DELETE("/deleteproduct/:id", productcontroller.DeleteProduct(db))
		admin.GET("/products/export", productcontroller.ExportProductsToExcel(db))
	}
}
