package contract

import (
	"context"

	"github.com/google/uuid"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/specification"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *entity.Article) error
	Update(ctx context.Context, article *entity.Article) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Article, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Article, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	UpdateDepartmentBulk(ctx context.Context, oldName, newName string) error
	DeleteByDepartment(ctx context.Context, department string) error
}

// ArticleMatch is a semantic search hit with its cosine distance.
type ArticleMatch struct {
	ArticleId uuid.UUID
	Distance  float64
}

type ArticleEmbeddingRepository interface {
	Upsert(ctx context.Context, embedding *entity.ArticleEmbedding) error
	DeleteByArticleId(ctx context.Context, articleId uuid.UUID) error
	// SearchNearest ranks a department's articles by cosine distance to the
	// query embedding.
	SearchNearest(ctx context.Context, embedding []float32, department string, limit int) ([]ArticleMatch, error)
}
