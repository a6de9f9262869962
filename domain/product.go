package domain

import (
	"time"
)

// CREATE TABLE public.products (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     sku         TEXT,
//     name        TEXT NOT NULL,
//     description TEXT,
//     category_id BIGINT,
//     base_price  NUMERIC NOT NULL,
//     stock       INT NOT NULL DEFAULT 0,
//     featured    BOOLEAN DEFAULT FALSE,
//     created_at  TIMESTAMPTZ DEFAULT NOW(),
//     updated_at  TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SKU         string    `gorm:"column:sku;type:text" json:"sku"`
	Name        string    `gorm:"column:name;type:text;not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	CategoryID  uint64    `gorm:"column:category_id;default:0" json:"category_id"`
	BasePrice   float64   `gorm:"column:base_price;type:numeric;not null" json:"base_price"`
	Stock       int       `gorm:"column:stock;not null;default:0" json:"stock"`
	Featured    bool      `gorm:"column:featured;default:false" json:"featured"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
