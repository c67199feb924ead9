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
)

type PermissionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PermissionMapper
}

func NewPermissionRepository(db *gorm.DB) contract.PermissionRepository {
	return &PermissionRepositoryImpl{
		db:     db,
		mapper: mapper.NewPermissionMapper(),
	}
}

func (r *PermissionRepositoryImpl) CreateBulk(ctx context.Context, grants []*entity.UserPermission) error {
	if len(grants) == 0 {
		return nil
	}
	models := make([]*model.UserPermission, len(grants))
	for i, grant := range grants {
		models[i] = r.mapper.ToModel(grant)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*grants[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *PermissionRepositoryImpl) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Delete(&model.UserPermission{}).Error
}

func (r *PermissionRepositoryImpl) FindAllByUserId(ctx context.Context, userId uuid.UUID) ([]*entity.UserPermission, error) {
	var models []*model.UserPermission
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.UserPermission, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *PermissionRepositoryImpl) FindGrant(ctx context.Context, userId uuid.UUID, name string) (*entity.UserPermission, error) {
	var m model.UserPermission
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userId, name).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
