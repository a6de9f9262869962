package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	TierBronze   = "bronze"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
)

type User struct {
	ID        uint64  `gorm:"primaryKey" json:"id"`
	FullName  string  `gorm:"column:full_name;not null" json:"full_name"`
	Email     string  `gorm:"column:email;unique;not null" json:"email"`
	Password  string  `gorm:"column:password;not null" json:"-"`
	Role      string  `gorm:"column:role;default:customer" json:"role"`
	Tier      string  `gorm:"column:tier;default:bronze" json:"tier"`
	Points    float64 `gorm:"column:points;default:0" json:"points"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
