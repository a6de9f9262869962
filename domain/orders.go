package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Orders struct {
	ID          uint64  `gorm:"primaryKey" json:"id"`
	Reference   string  `gorm:"column:reference;unique" json:"reference"`
	UserID      uint64  `gorm:"column:user_id;not null" json:"user_id"`
	ProductID   uint64  `gorm:"column:product_id;not null" json:"product_id"`
	Quantity    int     `gorm:"column:quantity;not null" json:"quantity"`
	BasePrice   float64 `gorm:"column:base_price;type:numeric" json:"base_price"`
	PriceEach   float64 `gorm:"column:price_each;type:numeric" json:"price_each"`
	Subtotal    float64 `gorm:"column:subtotal;type:numeric" json:"subtotal"`
	OrderStatus string  `gorm:"column:order_status" json:"order_status"`

	// snapshot of the pricing adjustments applied at checkout time
	AppliedAdjustments datatypes.JSON `gorm:"column:applied_adjustments;type:jsonb" json:"applied_adjustments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Orders) TableName() string {
	return "orders"
}
