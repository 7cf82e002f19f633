package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Anuragpraj/Ecommerce-Backend/models"
)

var (
	ErrCartNotFound  = errors.New("cart not found")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrUserNotFound  = errors.New("user not found")
	ErrNoOrdersFound = errors.New("no orders found")
)

type PlaceOrderInput struct {
	ShippingAddress string `json:"shipping_address"`
}

// generateOrderRef builds a unique, sortable order reference.
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// PlaceOrder turns the user's cart into an order. Each cart line is copied
// into an OrderItem that snapshots the product price at this moment, then
// the cart is emptied (not deleted). Order, items and cart-clear commit or
// roll back together.
func PlaceOrder(db *gorm.DB, userID uint, shippingAddress string) (models.Order, decimal.Decimal, error) {
	var cart models.Cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, decimal.Zero, ErrCartNotFound
		}
		return models.Order{}, decimal.Zero, err
	}

	var items []models.CartItem
	if err := db.Preload("Product").Where("cart_id = ?", cart.ID).Order("id asc").Find(&items).Error; err != nil {
		return models.Order{}, decimal.Zero, err
	}
	if len(items) == 0 {
		return models.Order{}, decimal.Zero, ErrEmptyCart
	}

	total := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			Price:       item.Product.Price,
		})
	}

	order := models.Order{
		UserID:          userID,
		OrderRef:        generateOrderRef(),
		ShippingAddress: shippingAddress,
		Status:          models.OrderStatusProcessing,
		Items:           orderItems,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return models.Order{}, decimal.Zero, err
	}

	broadcastNewOrder(order)
	return order, total, nil
}

func orderItemJSON(item models.OrderItem) gin.H {
	return gin.H{
		"product_name": item.ProductName,
		"quantity":     item.Quantity,
		"price":        item.Price,
		"total_price":  item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
	}
}

func orderJSON(order models.Order) gin.H {
	items := make([]gin.H, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemJSON(item))
	}
	return gin.H{
		"order_id":         order.ID,
		"order_ref":        order.OrderRef,
		"shipping_address": order.ShippingAddress,
		"status":           order.Status,
		"order_date":       order.CreatedAt,
		"items":            items,
	}
}

// ListOrdersByCustomer returns a customer's orders with nested items.
func ListOrdersByCustomer(db *gorm.DB, customerID uint) ([]models.Order, error) {
	var customer models.User
	if err := db.First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var orders []models.Order
	if err := db.Preload("Items").Where("user_id = ?", customerID).Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrNoOrdersFound
	}
	return orders, nil
}

// -------- Handlers --------

// POST /placeorder
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var input PlaceOrderInput
		if err := c.ShouldBindJSON(&input); err != nil || input.ShippingAddress == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Shipping address is required"})
			return
		}

		order, total, err := PlaceOrder(db, userID, input.ShippingAddress)
		if err != nil {
			switch {
			case errors.Is(err, ErrCartNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart is empty"})
			case errors.Is(err, ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty, cannot place order"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":      "Order placed successfully",
			"order_id":     order.ID,
			"total_amount": total,
		})
	}
}

// GET /getallorders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("User").Preload("Items").Order("created_at desc").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		list := make([]gin.H, 0, len(orders))
		for _, order := range orders {
			entry := orderJSON(order)
			entry["customer"] = order.User.Username
			list = append(list, entry)
		}

		c.JSON(http.StatusOK, gin.H{"orders": list})
	}
}

// GET /orders/customer/:id
func GetOrdersByCustomerHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}

		orders, err := ListOrdersByCustomer(db, uint(customerID))
		if err != nil {
			switch {
			case errors.Is(err, ErrUserNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			case errors.Is(err, ErrNoOrdersFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "No orders found for this customer"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			}
			return
		}

		list := make([]gin.H, 0, len(orders))
		for _, order := range orders {
			list = append(list, orderJSON(order))
		}

		c.JSON(http.StatusOK, gin.H{"orders": list})
	}
}
