package domain

import "time"

// CREATE TABLE public.product_views (
//     id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     product_id BIGINT NOT NULL,
//     user_id    BIGINT,
//     viewed_at  TIMESTAMPTZ DEFAULT NOW()
// );

type ProductView struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint64    `gorm:"column:product_id;not null;index" json:"product_id"`
	UserID    uint64    `gorm:"column:user_id" json:"user_id"`
	ViewedAt  time.Time `gorm:"column:viewed_at;autoCreateTime;index" json:"viewed_at"`
}

func (ProductView) TableName() string {
	return "product_views"
}
