package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/dto"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/serverutils"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/specification"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/unitofwork"
	"github.com/Gotppsn/TP-chatbot-sub000/pkg/embedding"
)

type IArticleService interface {
	GetAll(ctx context.Context, department string) ([]*dto.ArticleResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ArticleResponse, error)
	Create(ctx context.Context, createdBy uuid.UUID, req *dto.CreateArticleRequest) (*dto.CreateArticleResponse, error)
	Update(ctx context.Context, req *dto.UpdateArticleRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	SemanticSearch(ctx context.Context, department, query string, limit int) ([]*dto.ArticleSearchResponse, error)
}

type articleService struct {
	uowFactory        unitofwork.RepositoryFactory
	publisherService  IPublisherService
	embeddingProvider embedding.EmbeddingProvider
}

func NewArticleService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	embeddingProvider embedding.EmbeddingProvider,
) IArticleService {
	return &articleService{
		uowFactory:        uowFactory,
		publisherService:  publisherService,
		embeddingProvider: embeddingProvider,
	}
}

func toArticleResponse(a *entity.Article) *dto.ArticleResponse {
	return &dto.ArticleResponse{
		Id:         a.Id,
		Title:      a.Title,
		Content:    a.Content,
		Department: a.Department,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func (c *articleService) GetAll(ctx context.Context, department string) ([]*dto.ArticleResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "updated_at", Desc: true},
	}
	if department != "" {
		specs = append(specs, specification.ByDepartment{Department: department})
	}

	articles, err := uow.ArticleRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ArticleResponse, 0, len(articles))
	for _, article := range articles {
		result = append(result, toArticleResponse(article))
	}
	return result, nil
}

func (c *articleService) Show(ctx context.Context, id uuid.UUID) (*dto.ArticleResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	article, err := uow.ArticleRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, serverutils.NewNotFound("article not found")
	}
	return toArticleResponse(article), nil
}

func (c *articleService) queueEmbedding(ctx context.Context, articleId uuid.UUID) error {
	payload := dto.PublishEmbedArticleMessage{ArticleId: articleId}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.publisherService.Publish(ctx, payloadJson)
}

func (c *articleService) Create(ctx context.Context, createdBy uuid.UUID, req *dto.CreateArticleRequest) (*dto.CreateArticleResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	department, err := uow.DepartmentRepository().FindOne(ctx, specification.ByName{Name: req.Department})
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, serverutils.NewValidation("unknown department")
	}

	now := time.Now()
	article := entity.Article{
		Id:         uuid.New(),
		Title:      req.Title,
		Content:    req.Content,
		Department: req.Department,
		IsActive:   true,
		CreatedBy:  &createdBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uow.ArticleRepository().Create(ctx, &article); err != nil {
		return nil, err
	}

	if err := c.queueEmbedding(ctx, article.Id); err != nil {
		return nil, err
	}

	return &dto.CreateArticleResponse{Id: article.Id}, nil
}

func (c *articleService) Update(ctx context.Context, req *dto.UpdateArticleRequest) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	article, err := uow.ArticleRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return err
	}
	if article == nil {
		return serverutils.NewNotFound("article not found")
	}

	article.Title = req.Title
	article.Content = req.Content
	article.UpdatedAt = time.Now()
	if err := uow.ArticleRepository().Update(ctx, article); err != nil {
		return err
	}

	return c.queueEmbedding(ctx, article.Id)
}

func (c *articleService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	article, err := uow.ArticleRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if article == nil {
		return serverutils.NewNotFound("article not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ArticleEmbeddingRepository().DeleteByArticleId(ctx, id); err != nil {
		return err
	}
	if err := uow.ArticleRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

// SemanticSearch embeds the query and ranks the department's articles by
// cosine distance. Distance is flipped to a 0..1 relevance score for the
// frontend.
func (c *articleService) SemanticSearch(ctx context.Context, department, query string, limit int) ([]*dto.ArticleSearchResponse, error) {
	if query == "" {
		return nil, serverutils.NewValidation("query must not be empty")
	}
	if limit <= 0 {
		limit = 5
	}

	embedded, err := c.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, serverutils.NewUpstreamFailure("embedding provider is unavailable", err)
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	matches, err := uow.ArticleEmbeddingRepository().SearchNearest(ctx, embedded.Embedding.Values, department, limit)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ArticleSearchResponse, 0, len(matches))
	for _, match := range matches {
		article, err := uow.ArticleRepository().FindOne(ctx, specification.ByID{ID: match.ArticleId})
		if err != nil {
			return nil, err
		}
		if article == nil {
			continue
		}
		result = append(result, &dto.ArticleSearchResponse{
			Id:             article.Id,
			Title:          article.Title,
			Content:        article.Content,
			Department:     article.Department,
			RelevanceScore: 1 - match.Distance,
		})
	}
	return result, nil
}
