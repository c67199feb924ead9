package mapper

import (
	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/model"
)

type DepartmentMapper struct{}

func NewDepartmentMapper() *DepartmentMapper {
	return &DepartmentMapper{}
}

func (m *DepartmentMapper) ToEntity(d *model.Department) *entity.Department {
	if d == nil {
		return nil
	}

	return &entity.Department{
		Id:          d.Id,
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (m *DepartmentMapper) ToModel(d *entity.Department) *model.Department {
	if d == nil {
		return nil
	}

	return &model.Department{
		Id:          d.Id,
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
