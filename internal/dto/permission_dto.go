package dto

import "github.com/google/uuid"

type SetPermissionsRequest struct {
	UserId      uuid.UUID `json:"user_id" validate:"required"`
	Permissions []string  `json:"permissions" validate:"required"`
}

type PermissionsResponse struct {
	UserId      uuid.UUID `json:"user_id"`
	Permissions []string  `json:"permissions"`
}
