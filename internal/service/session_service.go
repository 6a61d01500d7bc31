package service

import (
	"context"
	"fmt"
	"time"

	"docchat-be/internal/constant"
	"docchat-be/internal/dto"
	"docchat-be/internal/entity"
	"docchat-be/internal/repository/specification"
	"docchat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ISessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error)
	List(ctx context.Context) ([]*dto.SessionResponse, error)
	Update(ctx context.Context, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
	}
}

func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session := entity.Session{
		Id:                    uuid.New(),
		Name:                  req.Name,
		ChunkSize:             req.ChunkSize,
		ChunkOverlap:          req.ChunkOverlap,
		RetrievalStrategy:     req.RetrievalStrategy,
		InternetSearchEnabled: req.InternetSearchEnabled,
		ModelProvider:         req.ModelProvider,
		ModelName:             req.ModelName,
		Temperature:           req.Temperature,
		MaxTokens:             req.MaxTokens,
		IsActive:              true,
		CreatedAt:             time.Now(),
	}

	if session.ChunkSize <= 0 {
		session.ChunkSize = constant.DefaultChunkSize
	}
	if session.ChunkOverlap <= 0 {
		session.ChunkOverlap = constant.DefaultChunkOverlap
	}
	if session.RetrievalStrategy == "" {
		session.RetrievalStrategy = "contextual"
	}
	if session.ChunkOverlap >= session.ChunkSize {
		return nil, fmt.Errorf("chunk_overlap (%d) must be smaller than chunk_size (%d)",
			session.ChunkOverlap, session.ChunkSize)
	}

	if err := uow.SessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	return s.toResponse(&session, 0), nil
}

func (s *sessionService) Show(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	count, err := uow.DocumentRepository().Count(ctx, specification.BySessionID{SessionID: id})
	if err != nil {
		return nil, err
	}

	return s.toResponse(session, count), nil
}

func (s *sessionService) List(ctx context.Context) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.SessionRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		count, err := uow.DocumentRepository().Count(ctx, specification.BySessionID{SessionID: session.Id})
		if err != nil {
			return nil, err
		}
		responses = append(responses, s.toResponse(session, count))
	}

	return responses, nil
}

func (s *sessionService) Update(ctx context.Context, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	if req.Name != nil {
		session.Name = *req.Name
	}
	if req.ChunkSize != nil {
		session.ChunkSize = *req.ChunkSize
	}
	if req.ChunkOverlap != nil {
		session.ChunkOverlap = *req.ChunkOverlap
	}
	if req.RetrievalStrategy != nil {
		session.RetrievalStrategy = *req.RetrievalStrategy
	}
	if req.InternetSearchEnabled != nil {
		session.InternetSearchEnabled = *req.InternetSearchEnabled
	}
	if req.IsActive != nil {
		session.IsActive = *req.IsActive
	}
	if req.Temperature != nil {
		session.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		session.MaxTokens = *req.MaxTokens
	}

	// The pair must stay coherent whichever side the update touched.
	if session.ChunkOverlap >= session.ChunkSize {
		return nil, fmt.Errorf("chunk_overlap (%d) must be smaller than chunk_size (%d)",
			session.ChunkOverlap, session.ChunkSize)
	}

	now := time.Now()
	session.UpdatedAt = &now

	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	count, err := uow.DocumentRepository().Count(ctx, specification.BySessionID{SessionID: session.Id})
	if err != nil {
		return nil, err
	}

	return s.toResponse(session, count), nil
}

// Delete cascades: chunks, documents, messages, threads and tools go
// with the session in one transaction.
func (s *sessionService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("session %s not found", id)
	}

	threads, err := uow.ThreadRepository().FindAll(ctx, specification.BySessionID{SessionID: id})
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	for _, thread := range threads {
		if err := uow.MessageRepository().DeleteByThreadId(ctx, thread.Id); err != nil {
			return err
		}
	}
	if err := uow.ThreadRepository().DeleteBySessionId(ctx, id); err != nil {
		return err
	}
	if err := uow.DocumentChunkRepository().DeleteBySessionId(ctx, id); err != nil {
		return err
	}
	if err := uow.DocumentRepository().DeleteBySessionId(ctx, id); err != nil {
		return err
	}
	if err := uow.ToolRepository().DeleteBySessionId(ctx, id); err != nil {
		return err
	}
	if err := uow.SessionRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *sessionService) toResponse(session *entity.Session, documentCount int64) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:                    session.Id,
		Name:                  session.Name,
		ChunkSize:             session.ChunkSize,
		ChunkOverlap:          session.ChunkOverlap,
		RetrievalStrategy:     session.RetrievalStrategy,
		InternetSearchEnabled: session.InternetSearchEnabled,
		ModelProvider:         session.ModelProvider,
		ModelName:             session.ModelName,
		Temperature:           session.Temperature,
		MaxTokens:             session.MaxTokens,
		IsActive:              session.IsActive,
		DocumentCount:         documentCount,
		CreatedAt:             session.CreatedAt,
		UpdatedAt:             session.UpdatedAt,
	}
}
