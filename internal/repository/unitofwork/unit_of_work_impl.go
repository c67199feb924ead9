package unitofwork

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/contract"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/implementation"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) DepartmentRepository() contract.DepartmentRepository {
	return implementation.NewDepartmentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChatbotRepository() contract.ChatbotRepository {
	return implementation.NewChatbotRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChatSessionRepository() contract.ChatSessionRepository {
	return implementation.NewChatSessionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChatMessageRepository() contract.ChatMessageRepository {
	return implementation.NewChatMessageRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PermissionRepository() contract.PermissionRepository {
	return implementation.NewPermissionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SettingsRepository() contract.SettingsRepository {
	return implementation.NewSettingsRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ArticleRepository() contract.ArticleRepository {
	return implementation.NewArticleRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ArticleEmbeddingRepository() contract.ArticleEmbeddingRepository {
	return implementation.NewArticleEmbeddingRepository(u.getDB())
}
