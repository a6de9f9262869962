package domain

import (
	"time"
)

// CREATE TABLE public.categories (
//     id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name       TEXT NOT NULL,
//     slug       TEXT NOT NULL UNIQUE,
//     created_at TIMESTAMPTZ DEFAULT NOW()
// );

type Category struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:text;not null" json:"name"`
	Slug      string    `gorm:"column:slug;type:text;not null;unique" json:"slug"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}
