package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/mapper"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/model"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/contract"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/specification"
)

type DepartmentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DepartmentMapper
}

func NewDepartmentRepository(db *gorm.DB) contract.DepartmentRepository {
	return &DepartmentRepositoryImpl{
		db:     db,
		mapper: mapper.NewDepartmentMapper(),
	}
}

func (r *DepartmentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DepartmentRepositoryImpl) Create(ctx context.Context, department *entity.Department) error {
	m := r.mapper.ToModel(department)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*department = *r.mapper.ToEntity(m)
	return nil
}

func (r *DepartmentRepositoryImpl) Update(ctx context.Context, department *entity.Department) error {
	m := r.mapper.ToModel(department)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*department = *r.mapper.ToEntity(m)
	return nil
}

func (r *DepartmentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Department{}, id).Error
}

func (r *DepartmentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Department, error) {
	var m model.Department
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DepartmentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Department, error) {
	var models []*model.Department
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Department, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *DepartmentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Department{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
