package entity

import (
	"time"

	"github.com/google/uuid"
)

// Article is a knowledge base entry scoped to a department. Articles follow
// department renames and deletes together with users and chatbots.
type Article struct {
	Id         uuid.UUID
	Title      string
	Content    string
	Department string
	IsActive   bool
	CreatedBy  *uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ArticleEmbedding is the vector projection of an article, produced by the
// embedding pipeline for semantic search.
type ArticleEmbedding struct {
	Id        uuid.UUID
	ArticleId uuid.UUID
	Embedding []float32
	CreatedAt time.Time
	UpdatedAt time.Time
}
