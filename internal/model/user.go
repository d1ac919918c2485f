package model

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name         string `gorm:"column:name;not null"`
	Email        string `gorm:"column:email;unique;not null"`
	Password     string `gorm:"column:password;not null"`
	RefreshToken string `gorm:"column:refresh_token;default:null"`
	Confirmed    bool   `gorm:"column:confirmed;default:false;not null"`
	Avatar       string `gorm:"column:avatar;default:null"`
}
