package model

import (
	"time"

	"gorm.io/gorm"
)

type Contact struct {
	gorm.Model
	Name     string    `gorm:"column:name;not null"`
	Surname  string    `gorm:"column:surname;not null"`
	Email    string    `gorm:"column:email"`
	Phone    string    `gorm:"column:phone"`
	BornDate time.Time `gorm:"column:born_date"`
	UserID   uint      `gorm:"column:user_id;not null;index"`
	User     User      `gorm:"constraint:OnDelete:CASCADE"`
}
