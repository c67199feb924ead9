package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/mapper"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/model"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/contract"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/specification"
)

type ArticleRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ArticleMapper
}

func NewArticleRepository(db *gorm.DB) contract.ArticleRepository {
	return &ArticleRepositoryImpl{
		db:     db,
		mapper: mapper.NewArticleMapper(),
	}
}

func (r *ArticleRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ArticleRepositoryImpl) Create(ctx context.Context, article *entity.Article) error {
	m := r.mapper.ToModel(article)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*article = *r.mapper.ToEntity(m)
	return nil
}

func (r *ArticleRepositoryImpl) Update(ctx context.Context, article *entity.Article) error {
	m := r.mapper.ToModel(article)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*article = *r.mapper.ToEntity(m)
	return nil
}

func (r *ArticleRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Article{}, id).Error
}

func (r *ArticleRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Article, error) {
	var m model.Article
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ArticleRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Article, error) {
	var models []*model.Article
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Article, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *ArticleRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Article{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ArticleRepositoryImpl) UpdateDepartmentBulk(ctx context.Context, oldName, newName string) error {
	return r.db.WithContext(ctx).
		Model(&model.Article{}).
		Where("department = ?", oldName).
		Update("department", newName).Error
}

func (r *ArticleRepositoryImpl) DeleteByDepartment(ctx context.Context, department string) error {
	return r.db.WithContext(ctx).
		Where("department = ?", department).
		Delete(&model.Article{}).Error
}

type ArticleEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ArticleMapper
}

func NewArticleEmbeddingRepository(db *gorm.DB) contract.ArticleEmbeddingRepository {
	return &ArticleEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewArticleMapper(),
	}
}

func (r *ArticleEmbeddingRepositoryImpl) Upsert(ctx context.Context, embedding *entity.ArticleEmbedding) error {
	m := r.mapper.EmbeddingToModel(embedding)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "article_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"embedding", "updated_at"}),
		}).
		Create(m).Error
}

func (r *ArticleEmbeddingRepositoryImpl) DeleteByArticleId(ctx context.Context, articleId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("article_id = ?", articleId).
		Delete(&model.ArticleEmbedding{}).Error
}

func (r *ArticleEmbeddingRepositoryImpl) SearchNearest(ctx context.Context, query []float32, department string, limit int) ([]contract.ArticleMatch, error) {
	var matches []contract.ArticleMatch
	err := r.db.WithContext(ctx).
		Table("article_embeddings").
		Select("article_embeddings.article_id, article_embeddings.embedding <=> ? AS distance", pgvector.NewVector(query)).
		Joins("JOIN articles ON articles.id = article_embeddings.article_id").
		Where("articles.department = ?", department).
		Order("distance ASC").
		Limit(limit).
		Scan(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}
