package domain

import "time"

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username" validate:"required,min=3,max=30,alphanum"`
	Password  string    `json:"password,omitempty"` // bcrypt digest; omitted from responses when cleared
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Password string `json:"password" validate:"required,min=8"`
}

type RegisterResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type Profile struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}
