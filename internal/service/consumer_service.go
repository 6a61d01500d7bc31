package service

import (
	"context"
	"encoding/json"
	"errors"

	"docchat-be/internal/constant"
	"docchat-be/internal/dto"
	"docchat-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	indexer   IIndexerService
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	indexer IIndexerService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		indexer:   indexer,
		logger:    log,
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
	var payload dto.IndexDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal index message", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack malformed messages, retrying cannot fix them.
		msg.Ack()
		return
	}

	chunkCount, err := cs.indexer.Index(ctx, payload.DocumentId)
	if err != nil {
		var indexErr *constant.DocumentIndexError
		if errors.As(err, &indexErr) {
			// Unparseable document: the failure is permanent, the
			// document stays processed=false.
			cs.logger.Warn("consumer", "document cannot be indexed", map[string]interface{}{
				"document_id": payload.DocumentId.String(),
				"reason":      indexErr.Reason,
			})
			msg.Ack()
			return
		}

		cs.logger.Error("consumer", "indexing failed, will retry", map[string]interface{}{
			"document_id": payload.DocumentId.String(),
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}

	cs.logger.Info("consumer", "document indexed", map[string]interface{}{
		"document_id": payload.DocumentId.String(),
		"chunks":      chunkCount,
	})
	msg.Ack()
}
