package service

import (
	"context"
	"fmt"
	"time"

	"docchat-be/internal/constant"
	"docchat-be/internal/entity"
	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/repository/specification"
	"docchat-be/internal/repository/unitofwork"
	"docchat-be/pkg/embedding"
	"docchat-be/pkg/utils"

	"github.com/google/uuid"
)

type IIndexerService interface {
	// Index (re)builds the chunk index for one document and returns
	// the number of chunks written.
	Index(ctx context.Context, documentId uuid.UUID) (int, error)
}

type indexerService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewIndexerService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) IIndexerService {
	return &indexerService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            log,
	}
}

func (s *indexerService) Index(ctx context.Context, documentId uuid.UUID) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return 0, err
	}
	if document == nil {
		return 0, fmt.Errorf("document %s not found", documentId)
	}

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: document.SessionId})
	if err != nil {
		return 0, err
	}
	if session == nil {
		return 0, fmt.Errorf("session %s not found for document %s", document.SessionId, documentId)
	}

	if document.Content == "" {
		return 0, &constant.DocumentIndexError{
			DocumentID: documentId.String(),
			Reason:     "no extractable text",
		}
	}

	chunkSize := session.ChunkSize
	if chunkSize <= 0 {
		chunkSize = constant.DefaultChunkSize
	}
	chunkOverlap := session.ChunkOverlap
	if chunkOverlap < 0 {
		chunkOverlap = constant.DefaultChunkOverlap
	}

	chunkTexts := utils.SplitText(document.Content, chunkSize, chunkOverlap)

	s.logger.Info("indexer", "embedding document chunks", map[string]interface{}{
		"document_id": documentId.String(),
		"session_id":  document.SessionId.String(),
		"chunks":      len(chunkTexts),
	})

	chunks := make([]*entity.DocumentChunk, 0, len(chunkTexts))
	for i, text := range chunkTexts {
		res, err := s.embeddingProvider.Generate(text, "RETRIEVAL_DOCUMENT")
		if err != nil {
			return 0, fmt.Errorf("embed chunk %d of document %s: %w", i, documentId, err)
		}
		chunks = append(chunks, &entity.DocumentChunk{
			Id:         uuid.New(),
			DocumentId: document.Id,
			SessionId:  document.SessionId,
			ChunkIndex: i,
			Content:    text,
			Embedding:  res.Embedding.Values,
			CreatedAt:  time.Now(),
		})
	}

	// Swap the old chunk set for the new one atomically so concurrent
	// retrieval sees either the previous snapshot or the new one,
	// never a mix.
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer uow.Rollback()

	if err := uow.DocumentChunkRepository().DeleteByDocumentId(ctx, document.Id); err != nil {
		return 0, err
	}
	if len(chunks) > 0 {
		if err := uow.DocumentChunkRepository().CreateBulk(ctx, chunks); err != nil {
			return 0, err
		}
	}

	document.Processed = true
	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, err
	}

	return len(chunks), nil
}
