package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/dto"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/specification"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/unitofwork"
	"github.com/Gotppsn/TP-chatbot-sub000/pkg/embedding"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedArticleMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		// Ack invalid messages to prevent infinite retry
		msg.Ack()
		return
	}

	log.Printf("[INFO] Processing article embedding for ArticleId: %s", payload.ArticleId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	article, err := uow.ArticleRepository().FindOne(ctx, specification.ByID{ID: payload.ArticleId})
	if err != nil {
		log.Printf("[ERROR] Failed to get article %s: %v", payload.ArticleId, err)
		msg.Nack()
		return
	}
	if article == nil {
		// Article deleted before the worker got to it.
		log.Printf("[WARN] Article not found: %s", payload.ArticleId)
		msg.Ack()
		return
	}

	content := article.Title + "\n\n" + article.Content

	res, err := cs.embeddingProvider.Generate(content, "RETRIEVAL_DOCUMENT")
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for article %s: %v", payload.ArticleId, err)
		msg.Nack()
		return
	}

	now := time.Now()
	emb := entity.ArticleEmbedding{
		Id:        uuid.New(),
		ArticleId: article.Id,
		Embedding: res.Embedding.Values,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uow.ArticleEmbeddingRepository().Upsert(ctx, &emb); err != nil {
		log.Printf("[ERROR] Failed to store embedding for article %s: %v", payload.ArticleId, err)
		msg.Nack()
		return
	}

	msg.Ack()
}
