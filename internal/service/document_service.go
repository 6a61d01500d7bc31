package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"docchat-be/internal/constant"
	"docchat-be/internal/dto"
	"docchat-be/internal/entity"
	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/repository/specification"
	"docchat-be/internal/repository/unitofwork"
	"docchat-be/pkg/events"
	"docchat-be/pkg/extract"
	pkgNats "docchat-be/pkg/nats"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Upload(ctx context.Context, sessionId uuid.UUID, filename string, data []byte) (*dto.UploadDocumentResponse, error)
	List(ctx context.Context, sessionId uuid.UUID) ([]*dto.DocumentResponse, error)
	Reindex(ctx context.Context, documentId uuid.UUID) error
	Delete(ctx context.Context, documentId uuid.UUID) error
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	indexer          IIndexerService
	publisherService IPublisherService
	eventPublisher   *pkgNats.Publisher
	logger           logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	indexer IIndexerService,
	publisherService IPublisherService,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		indexer:          indexer,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

// Upload stores the document and indexes it synchronously. An
// unparseable file still leaves a document record behind, marked
// processed=false, and never touches sibling documents.
func (s *documentService) Upload(ctx context.Context, sessionId uuid.UUID, filename string, data []byte) (*dto.UploadDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session %s not found", sessionId)
	}

	document := entity.Document{
		Id:         uuid.New(),
		SessionId:  sessionId,
		Filename:   filename,
		SizeBytes:  int64(len(data)),
		Processed:  false,
		UploadedAt: time.Now(),
	}

	extracted, extractErr := extract.FromUpload(filename, data)
	if extractErr == nil {
		document.Content = extracted.Text
		document.PageCount = extracted.PageCount
	}

	if err := uow.DocumentRepository().Create(ctx, &document); err != nil {
		return nil, err
	}

	if extractErr != nil {
		return nil, &constant.DocumentIndexError{
			DocumentID: document.Id.String(),
			Reason:     extractErr.Error(),
			Err:        extractErr,
		}
	}

	chunkCount, err := s.indexer.Index(ctx, document.Id)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.NewDocumentIndexedEvent(document.Id, sessionId, chunkCount)
		// Events are auxiliary; a dead NATS never fails an upload.
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("document", "failed to publish DOCUMENT_INDEXED event", map[string]interface{}{
				"document_id": document.Id.String(),
				"error":       err.Error(),
			})
		}
	}

	return &dto.UploadDocumentResponse{
		Id:         document.Id,
		ChunkCount: chunkCount,
		Processed:  true,
	}, nil
}

func (s *documentService) List(ctx context.Context, sessionId uuid.UUID) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "uploaded_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.DocumentResponse, len(documents))
	for i, document := range documents {
		responses[i] = &dto.DocumentResponse{
			Id:         document.Id,
			SessionId:  document.SessionId,
			Filename:   document.Filename,
			SizeBytes:  document.SizeBytes,
			PageCount:  document.PageCount,
			Processed:  document.Processed,
			UploadedAt: document.UploadedAt,
		}
	}

	return responses, nil
}

// Reindex queues an asynchronous rebuild, used after session chunk
// configuration changes.
func (s *documentService) Reindex(ctx context.Context, documentId uuid.UUID) error {
	payload := dto.IndexDocumentMessage{DocumentId: documentId}
	msgJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, msgJson)
}

func (s *documentService) Delete(ctx context.Context, documentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return err
	}
	if document == nil {
		return fmt.Errorf("document %s not found", documentId)
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentChunkRepository().DeleteByDocumentId(ctx, documentId); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, documentId); err != nil {
		return err
	}

	return uow.Commit()
}
