package mapper

import (
	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/model"
)

type PermissionMapper struct{}

func NewPermissionMapper() *PermissionMapper {
	return &PermissionMapper{}
}

func (m *PermissionMapper) ToEntity(p *model.UserPermission) *entity.UserPermission {
	return &entity.UserPermission{
		Id:        p.Id,
		UserId:    p.UserId,
		Name:      p.Name,
		Granted:   p.Granted,
		CreatedAt: p.CreatedAt,
	}
}

func (m *PermissionMapper) ToModel(p *entity.UserPermission) *model.UserPermission {
	return &model.UserPermission{
		Id:        p.Id,
		UserId:    p.UserId,
		Name:      p.Name,
		Granted:   p.Granted,
		CreatedAt: p.CreatedAt,
	}
}
