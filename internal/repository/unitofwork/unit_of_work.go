package unitofwork

import (
	"context"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	DepartmentRepository() contract.DepartmentRepository
	ChatbotRepository() contract.ChatbotRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	PermissionRepository() contract.PermissionRepository
	SettingsRepository() contract.SettingsRepository
	ArticleRepository() contract.ArticleRepository
	ArticleEmbeddingRepository() contract.ArticleEmbeddingRepository
}
