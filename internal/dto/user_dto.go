package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"created_at"`
}

type UpdateUserRequest struct {
	Id         uuid.UUID
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	Department string `json:"department"`
}
