package Models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name     string  `json:"name" gorm:"not null"`
	Email    string  `json:"email" gorm:"not null;uniqueIndex"`
	Password []byte  `json:"-" gorm:"not null"`
	Children []Child `json:"children,omitempty" gorm:"foreignKey:UserID"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
