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

type ChatbotRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatbotMapper
}

func NewChatbotRepository(db *gorm.DB) contract.ChatbotRepository {
	return &ChatbotRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatbotMapper(),
	}
}

func (r *ChatbotRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatbotRepositoryImpl) Create(ctx context.Context, chatbot *entity.Chatbot) error {
	m := r.mapper.ToModel(chatbot)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*chatbot = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChatbotRepositoryImpl) Update(ctx context.Context, chatbot *entity.Chatbot) error {
	m := r.mapper.ToModel(chatbot)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*chatbot = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChatbotRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&model.Chatbot{}, id).Error
}

func (r *ChatbotRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chatbot, error) {
	var m model.Chatbot
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ChatbotRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chatbot, error) {
	var models []*model.Chatbot
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ChatbotRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Chatbot{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ChatbotRepositoryImpl) FindByFlowiseId(ctx context.Context, flowiseId string) (*entity.Chatbot, error) {
	var m model.Chatbot
	if err := r.db.WithContext(ctx).Where("flowise_id = ?", flowiseId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ChatbotRepositoryImpl) UpdateDepartmentBulk(ctx context.Context, oldName, newName string) error {
	return r.db.WithContext(ctx).
		Model(&model.Chatbot{}).
		Where("department = ?", oldName).
		Update("department", newName).Error
}

func (r *ChatbotRepositoryImpl) DeleteByDepartment(ctx context.Context, department string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&model.Chatbot{}).
		Where("department = ?", department).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return ids, nil
	}
	if err := r.db.WithContext(ctx).Unscoped().
		Where("department = ?", department).
		Delete(&model.Chatbot{}).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
