package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type Article struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title      string         `gorm:"type:varchar(300);not null"`
	Content    string         `gorm:"type:text;not null"`
	Department string         `gorm:"type:varchar(100);not null;index"`
	IsActive   bool           `gorm:"default:true"`
	CreatedBy  *uuid.UUID     `gorm:"type:uuid"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Article) TableName() string {
	return "articles"
}

type ArticleEmbedding struct {
	Id        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ArticleId uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Embedding pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
}

func (ArticleEmbedding) TableName() string {
	return "article_embeddings"
}
