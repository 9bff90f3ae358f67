package auth

import "time"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

type AddUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user"`
}

type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// UserView: 一覧の1行（パスワードハッシュは含めない）
type UserView struct {
	Email string `json:"email"`
	User  User   `json:"user"`
}

type ListUsersResponse struct {
	Success bool       `json:"success"`
	Users   []UserView `json:"users"`
}

type UserResponse struct {
	Success bool `json:"success"`
	User    User `json:"user"`
}

type OKResponse struct {
	Success bool `json:"success"`
}
