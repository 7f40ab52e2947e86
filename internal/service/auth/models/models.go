package models

import (
	"strconv"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// Request модели

// RegisterRequest запрос на регистрацию
type RegisterRequest struct {
	Name           string `json:"name"`
	Number         string `json:"number"`
	Password       string `json:"password"`
	RepeatPassword string `json:"repeatPassword,omitempty"`
}

// LoginRequest запрос на вход
type LoginRequest struct {
	Number   string `json:"number"`
	Password string `json:"password"`
}

// UpdateProfileRequest запрос на обновление профиля
// Пустые поля не изменяются
type UpdateProfileRequest struct {
	Name           *string `json:"name,omitempty"`
	Number         *string `json:"number,omitempty"`
	Password       *string `json:"password,omitempty"`
	RepeatPassword *string `json:"repeatPassword,omitempty"`
}

// Response модели

// UserResponse публичные данные пользователя
type UserResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Number  string `json:"number"`
	IsAdmin bool   `json:"isAdmin"`
}

// AuthResponse ответ на регистрацию и вход
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// FromDomainUser конвертирует domain модель в DTO
func FromDomainUser(u *domain.User, isAdmin bool) UserResponse {
	return UserResponse{
		ID:      strconv.FormatInt(u.ID, 10),
		Name:    u.Name,
		Number:  u.PhoneNumber,
		IsAdmin: isAdmin,
	}
}
