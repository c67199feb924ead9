package dto

import "github.com/google/uuid"

// PublishEmbedArticleMessage is the payload queued when an article's content
// changes and its embedding must be rebuilt.
type PublishEmbedArticleMessage struct {
	ArticleId uuid.UUID `json:"article_id"`
}
