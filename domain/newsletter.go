package domain

import "time"

type NewsletterSubscriber struct {
	ID          uint64     `gorm:"primaryKey" json:"id"`
	Email       string     `gorm:"column:email;unique;not null" json:"email"`
	FullName    string     `gorm:"column:full_name" json:"full_name"`
	Confirmed   bool       `gorm:"column:confirmed;default:false" json:"confirmed"`
	ConfirmedAt *time.Time `gorm:"column:confirmed_at" json:"confirmed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (NewsletterSubscriber) TableName() string {
	return "newsletter_subscribers"
}
