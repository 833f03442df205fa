package models

import (
	"time"
)

// User is created on first successful external login and never updated
// or deleted by the application afterwards.
type User struct {
	ID        uint   `gorm:"primarykey"`
	Name      string `gorm:"size:250;not null"`
	Email     string `gorm:"size:250;not null;uniqueIndex"`
	Picture   string `gorm:"size:250"`
	CreatedAt time.Time
}

// Category groups items and belongs to the user who created it.
// Deleting a category deletes its items.
type Category struct {
	ID     uint   `gorm:"primarykey"`
	Name   string `gorm:"size:50;not null;uniqueIndex"`
	UserID uint   `gorm:"not null;index"`
	User   *User  `gorm:"foreignKey:UserID"`
	Items  []Item `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// Item is a single catalog entry. Date is set on creation and refreshed
// on every edit.
type Item struct {
	ID          uint      `gorm:"primarykey"`
	Name        string    `gorm:"size:80;not null;uniqueIndex"`
	Description string    `gorm:"size:500"`
	Picture     string    `gorm:"size:250"`
	Date        time.Time `gorm:"not null"`
	CategoryID  uint      `gorm:"not null;index"`
	Category    *Category `gorm:"foreignKey:CategoryID"`
	UserID      uint      `gorm:"not null;index"`
	User        *User     `gorm:"foreignKey:UserID"`
}
