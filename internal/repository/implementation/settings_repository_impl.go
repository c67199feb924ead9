package implementation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/mapper"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/model"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/contract"
)

type SettingsRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SettingsMapper
}

func NewSettingsRepository(db *gorm.DB) contract.SettingsRepository {
	return &SettingsRepositoryImpl{
		db:     db,
		mapper: mapper.NewSettingsMapper(),
	}
}

// FindFirst returns the oldest settings row. The table is expected to hold a
// single row but the portal tolerates stray duplicates by always reading the
// first one created.
func (r *SettingsRepositoryImpl) FindFirst(ctx context.Context) (*entity.SystemSettings, error) {
	var m model.SystemSettings
	if err := r.db.WithContext(ctx).Order("created_at ASC").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SettingsRepositoryImpl) Create(ctx context.Context, settings *entity.SystemSettings) error {
	m := r.mapper.ToModel(settings)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*settings = *r.mapper.ToEntity(m)
	return nil
}

func (r *SettingsRepositoryImpl) Update(ctx context.Context, settings *entity.SystemSettings) error {
	m := r.mapper.ToModel(settings)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*settings = *r.mapper.ToEntity(m)
	return nil
}
