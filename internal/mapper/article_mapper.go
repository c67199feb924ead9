package mapper

import (
	"github.com/pgvector/pgvector-go"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/model"
)

type ArticleMapper struct{}

func NewArticleMapper() *ArticleMapper {
	return &ArticleMapper{}
}

func (m *ArticleMapper) ToEntity(a *model.Article) *entity.Article {
	if a == nil {
		return nil
	}

	return &entity.Article{
		Id:         a.Id,
		Title:      a.Title,
		Content:    a.Content,
		Department: a.Department,
		IsActive:   a.IsActive,
		CreatedBy:  a.CreatedBy,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func (m *ArticleMapper) ToModel(a *entity.Article) *model.Article {
	if a == nil {
		return nil
	}

	return &model.Article{
		Id:         a.Id,
		Title:      a.Title,
		Content:    a.Content,
		Department: a.Department,
		IsActive:   a.IsActive,
		CreatedBy:  a.CreatedBy,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func (m *ArticleMapper) EmbeddingToEntity(e *model.ArticleEmbedding) *entity.ArticleEmbedding {
	if e == nil {
		return nil
	}

	return &entity.ArticleEmbedding{
		Id:        e.Id,
		ArticleId: e.ArticleId,
		Embedding: e.Embedding.Slice(),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (m *ArticleMapper) EmbeddingToModel(e *entity.ArticleEmbedding) *model.ArticleEmbedding {
	if e == nil {
		return nil
	}

	return &model.ArticleEmbedding{
		Id:        e.Id,
		ArticleId: e.ArticleId,
		Embedding: pgvector.NewVector(e.Embedding),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
