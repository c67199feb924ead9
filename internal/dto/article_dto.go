package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateArticleRequest struct {
	Title      string `json:"title" validate:"required"`
	Content    string `json:"content" validate:"required"`
	Department string `json:"department" validate:"required"`
}

type CreateArticleResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateArticleRequest struct {
	Id      uuid.UUID
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type ArticleResponse struct {
	Id         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ArticleSearchResponse struct {
	Id             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Department     string    `json:"department"`
	RelevanceScore float64   `json:"relevance_score"`
}
