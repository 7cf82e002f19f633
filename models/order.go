package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing" // Set on creation; no handler moves it further
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
)

type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	UserID          uint        `gorm:"index;not null" json:"user_id"`
	User            User        `gorm:"foreignKey:UserID" json:"-"`
	OrderRef        string      `gorm:"uniqueIndex" json:"order_ref"`
	ShippingAddress string      `gorm:"not null" json:"shipping_address"`
	Status          OrderStatus `gorm:"type:VARCHAR(20);default:'Processing'" json:"status"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
}

// OrderItem freezes the product price at purchase time, so order history
// is untouched by later catalog edits.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     uint            `gorm:"index" json:"order_id"`
	ProductID   uint            `json:"product_id"`
	Product     Product         `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	ProductName string          `json:"product_name"`
	Quantity    int             `gorm:"not null;default:1" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
}
