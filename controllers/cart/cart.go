package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Anuragpraj/Ecommerce-Backend/models"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrCartNotFound     = errors.New("cart not found")
)

type AddToCartInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  *int `json:"quantity"`
}

type UpdateCartItemInput struct {
	CartItemID uint `json:"cart_item_id" binding:"required"`
	Quantity   *int `json:"quantity"`
}

type RemoveCartItemInput struct {
	CartItemID uint `json:"cart_item_id" binding:"required"`
}

// CartLine is one cart row joined with its product, plus the line total.
type CartLine struct {
	CartItemID  uint            `json:"cart_item_id"`
	ProductID   uint            `json:"product_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// AddItem puts quantity of the product into the user's cart, creating the
// cart on first use. A product already in the cart gets its quantity
// incremented rather than a second line.
func AddItem(db *gorm.DB, userID, productID uint, quantity int) (models.CartItem, error) {
	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CartItem{}, ErrProductNotFound
		}
		return models.CartItem{}, err
	}

	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := db.Create(&cart).Error; err != nil {
			return models.CartItem{}, err
		}
	} else if err != nil {
		return models.CartItem{}, err
	}

	var item models.CartItem
	err = db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   time.Now(),
		}
		return item, db.Create(&item).Error
	} else if err != nil {
		return models.CartItem{}, err
	}

	item.Quantity += quantity
	return item, db.Save(&item).Error
}

// UpdateItem overwrites the quantity of an existing cart line.
func UpdateItem(db *gorm.DB, cartItemID uint, quantity int) (models.CartItem, error) {
	var item models.CartItem
	if err := db.First(&item, "id = ?", cartItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CartItem{}, ErrCartItemNotFound
		}
		return models.CartItem{}, err
	}

	item.Quantity = quantity
	return item, db.Save(&item).Error
}

// RemoveItem deletes a single cart line.
func RemoveItem(db *gorm.DB, cartItemID uint) error {
	result := db.Where("id = ?", cartItemID).Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// GetLines returns the user's cart lines priced at the current catalog
// price, with the summed cart total.
func GetLines(db *gorm.DB, userID uint) ([]CartLine, decimal.Decimal, error) {
	var cart models.Cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, decimal.Zero, ErrCartNotFound
		}
		return nil, decimal.Zero, err
	}

	var items []models.CartItem
	if err := db.Preload("Product").Where("cart_id = ?", cart.ID).Order("id asc").Find(&items).Error; err != nil {
		return nil, decimal.Zero, err
	}

	lines := make([]CartLine, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		lineTotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		lines = append(lines, CartLine{
			CartItemID:  item.ID,
			ProductID:   item.ProductID,
			Name:        item.Product.Name,
			Description: item.Product.Description,
			Quantity:    item.Quantity,
			Price:       item.Product.Price,
			TotalPrice:  lineTotal,
		})
		total = total.Add(lineTotal)
	}

	return lines, total, nil
}

// -------- Handlers --------

// POST /cart/add
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var input AddToCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		quantity := 1
		if input.Quantity != nil {
			quantity = *input.Quantity
		}
		if quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be greater than 0"})
			return
		}

		item, err := AddItem(db, userID, input.ProductID, quantity)
		if err != nil {
			if errors.Is(err, ErrProductNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":      "Product added to cart",
			"cart_item_id": item.ID,
			"quantity":     item.Quantity,
		})
	}
}

// PUT /cart/update
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Quantity == nil || *input.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be greater than 0"})
			return
		}

		item, err := UpdateItem(db, input.CartItemID, *input.Quantity)
		if err != nil {
			if errors.Is(err, ErrCartItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":      "Cart item updated successfully",
			"cart_item_id": item.ID,
			"quantity":     item.Quantity,
		})
	}
}

// DELETE /cart/delete
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RemoveCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := RemoveItem(db, input.CartItemID); err != nil {
			if errors.Is(err, ErrCartItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product removed from cart"})
	}
}

// GET /cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		lines, total, err := GetLines(db, userID)
		if err != nil {
			if errors.Is(err, ErrCartNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Cart is empty"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"cart": lines, "total_amount": total})
	}
}
