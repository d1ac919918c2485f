package dto

import "time"

type ContactRequest struct {
	Name     string    `json:"name" binding:"required,min=1,max=30"`
	Surname  string    `json:"surname" binding:"required,min=1,max=30"`
	Email    string    `json:"email" binding:"omitempty,email"`
	Phone    string    `json:"phone" binding:"omitempty,min=5,max=30"`
	BornDate time.Time `json:"born_date" binding:"required,borndate"`
}

type ContactResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	BornDate  time.Time `json:"born_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContactFilter carries the optional exact-match query filters for listing.
type ContactFilter struct {
	Name    string `form:"name"`
	Surname string `form:"surname"`
	Email   string `form:"email"`
}
