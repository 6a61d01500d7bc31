package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"docchat-be/internal/constant"
	"docchat-be/internal/dto"
	"docchat-be/internal/entity"
	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/repository/memory"
	"docchat-be/internal/repository/specification"
	"docchat-be/internal/repository/unitofwork"
	"docchat-be/pkg/events"
	"docchat-be/pkg/llm"
	pkgNats "docchat-be/pkg/nats"
	"docchat-be/pkg/rag/compose"
	"docchat-be/pkg/rag/history"
	"docchat-be/pkg/rag/retrieval"
	"docchat-be/pkg/tools"
	"docchat-be/pkg/websearch"

	"github.com/google/uuid"
)

const threadTitleMaxRunes = 80

type IChatService interface {
	SendChat(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	ListThreads(ctx context.Context, sessionId uuid.UUID) ([]*dto.ThreadDTO, error)
	GetHistory(ctx context.Context, threadId uuid.UUID) (*dto.GetChatHistoryResponse, error)
	ListStrategies() []*dto.StrategyDTO
}

type chatService struct {
	uowFactory      unitofwork.RepositoryFactory
	turnLocks       *memory.TurnLockRepository
	retrievalEngine *retrieval.Engine
	historyLoader   *history.Loader
	toolRouter      *tools.Router
	toolExecutor    *tools.Executor
	searchClient    websearch.Client
	composer        *compose.Composer
	eventPublisher  *pkgNats.Publisher
	logger          logger.ILogger
	ragTrace        *log.Logger

	searchEnabled    bool
	searchMaxResults int
	actionTimeout    time.Duration
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	turnLocks *memory.TurnLockRepository,
	retrievalEngine *retrieval.Engine,
	historyLoader *history.Loader,
	toolRouter *tools.Router,
	toolExecutor *tools.Executor,
	searchClient websearch.Client,
	composer *compose.Composer,
	eventPublisher *pkgNats.Publisher,
	appLogger logger.ILogger,
	ragTrace *log.Logger,
	searchEnabled bool,
	searchMaxResults int,
	actionTimeout time.Duration,
) IChatService {
	if actionTimeout <= 0 {
		actionTimeout = 15 * time.Second
	}
	if searchMaxResults <= 0 {
		searchMaxResults = 5
	}
	return &chatService{
		uowFactory:       uowFactory,
		turnLocks:        turnLocks,
		retrievalEngine:  retrievalEngine,
		historyLoader:    historyLoader,
		toolRouter:       toolRouter,
		toolExecutor:     toolExecutor,
		searchClient:     searchClient,
		composer:         composer,
		eventPublisher:   eventPublisher,
		logger:           appLogger,
		ragTrace:         ragTrace,
		searchEnabled:    searchEnabled,
		searchMaxResults: searchMaxResults,
		actionTimeout:    actionTimeout,
	}
}

// SendChat runs one full turn: resolve thread, gather evidence from
// tools, search and documents (each source isolated), compose exactly
// one reply, then persist both messages together. Turns within a
// thread serialize on a per-thread lock; turns across threads and
// sessions run in parallel.
func (s *chatService) SendChat(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: req.SessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session %s not found", req.SessionId)
	}
	if !session.IsActive {
		return nil, fmt.Errorf("session %s is archived", req.SessionId)
	}

	thread, created, err := s.resolveThread(ctx, uow, session.Id, req)
	if err != nil {
		return nil, err
	}

	lock := s.turnLocks.Acquire(thread.Id)
	lock.Lock()
	defer lock.Unlock()

	threadHistory, err := s.historyLoader.LoadThreadHistory(ctx, thread.Id)
	if err != nil {
		return nil, err
	}
	truncated := history.Truncate(threadHistory, constant.DefaultHistoryBudget)

	strategy, k, err := s.resolveStrategy(session, req)
	if err != nil {
		return nil, err
	}

	toolEvidence, err := s.gatherToolEvidence(ctx, uow, session.Id, req.Message)
	if err != nil {
		// Malformed explicit arguments surface to the caller instead
		// of silently degrading.
		return nil, err
	}

	searchEvidence := s.gatherSearchEvidence(ctx, session, req)
	documentEvidence := s.gatherDocumentEvidence(ctx, uow, session.Id, req.Message, strategy, k, truncated)

	s.traceTurn(thread.Id, strategy, toolEvidence, searchEvidence, documentEvidence)

	options := s.completionOptions(session)
	output, err := s.composer.Compose(ctx, &compose.Input{
		Query:     req.Message,
		History:   truncated,
		Documents: documentEvidence,
		Tool:      toolEvidence,
		Search:    searchEvidence,
	}, options...)
	if err != nil {
		// Completion failure fails the turn; nothing is persisted.
		return nil, err
	}

	userMessage := &entity.Message{
		Id:        uuid.New(),
		ThreadId:  thread.Id,
		Role:      constant.MessageRoleUser,
		Content:   req.Message,
		CreatedAt: time.Now(),
	}
	assistantMessage := &entity.Message{
		Id:          uuid.New(),
		ThreadId:    thread.Id,
		Role:        constant.MessageRoleAssistant,
		Content:     output.Answer,
		RagStrategy: string(strategy),
		Provenance:  output.Provenance,
		CreatedAt:   time.Now(),
	}

	if err := s.persistTurn(ctx, thread, created, userMessage, assistantMessage); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.NewChatTurnCompletedEvent(session.Id, thread.Id, string(strategy), output.Provenance)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("chat", "failed to publish CHAT_TURN_COMPLETED event", map[string]interface{}{
				"thread_id": thread.Id.String(),
				"error":     err.Error(),
			})
		}
	}

	return &dto.SendMessageResponse{
		ThreadId:    thread.Id,
		ThreadTitle: thread.Title,
		Sent:        toMessageDTO(userMessage),
		Reply:       toMessageDTO(assistantMessage),
	}, nil
}

func (s *chatService) resolveThread(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID, req *dto.SendMessageRequest) (*entity.Thread, bool, error) {
	if req.ThreadId != nil {
		thread, err := uow.ThreadRepository().FindOne(ctx,
			specification.ByID{ID: *req.ThreadId},
			specification.BySessionID{SessionID: sessionId},
		)
		if err != nil {
			return nil, false, err
		}
		if thread == nil {
			return nil, false, fmt.Errorf("thread %s not found in session %s", *req.ThreadId, sessionId)
		}
		return thread, false, nil
	}

	thread := &entity.Thread{
		Id:        uuid.New(),
		SessionId: sessionId,
		Title:     truncateRunes(req.Message, threadTitleMaxRunes),
		CreatedAt: time.Now(),
	}
	if err := uow.ThreadRepository().Create(ctx, thread); err != nil {
		return nil, false, err
	}
	return thread, true, nil
}

func (s *chatService) resolveStrategy(session *entity.Session, req *dto.SendMessageRequest) (retrieval.Strategy, int, error) {
	raw := session.RetrievalStrategy
	k := constant.DefaultTopK

	if req.RagConfig != nil {
		if req.RagConfig.Strategy != "" {
			raw = req.RagConfig.Strategy
		}
		if req.RagConfig.K > 0 {
			k = req.RagConfig.K
		}
	}

	strategy, err := retrieval.ParseStrategy(raw)
	if err != nil {
		return "", 0, err
	}
	return strategy, k, nil
}

func (s *chatService) gatherToolEvidence(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID, message string) (compose.ToolEvidence, error) {
	registered, err := uow.ToolRepository().FindAll(ctx, specification.BySessionID{SessionID: sessionId})
	if err != nil {
		return compose.ToolEvidence{Status: compose.SourceFailed, Err: err}, nil
	}

	invocation, err := s.toolRouter.Route(ctx, message, registered)
	if err != nil {
		var parseErr *constant.ToolArgumentParseError
		if errors.As(err, &parseErr) {
			return compose.ToolEvidence{}, err
		}
		return compose.ToolEvidence{Status: compose.SourceFailed, Err: err}, nil
	}
	if invocation == nil {
		return compose.ToolEvidence{Status: compose.SourceEmpty}, nil
	}

	execCtx, cancel := context.WithTimeout(ctx, s.actionTimeout)
	defer cancel()

	result, err := s.toolExecutor.Execute(execCtx, invocation)
	if err != nil {
		s.logger.Warn("chat", "tool execution failed", map[string]interface{}{
			"tool":  invocation.Tool.Name,
			"error": err.Error(),
		})
		return compose.ToolEvidence{
			Status:   compose.SourceFailed,
			ToolName: invocation.Tool.Name,
			Err:      err,
		}, nil
	}

	return compose.ToolEvidence{
		Status:   compose.SourceOK,
		ToolName: invocation.Tool.Name,
		Result:   result,
	}, nil
}

func (s *chatService) gatherSearchEvidence(ctx context.Context, session *entity.Session, req *dto.SendMessageRequest) compose.SearchEvidence {
	if !s.searchEnabled || !session.InternetSearchEnabled {
		return compose.SearchEvidence{Status: compose.SourceEmpty}
	}
	if !req.PreferInternetFirst && !websearch.ShouldSearch(req.Message) {
		return compose.SearchEvidence{Status: compose.SourceEmpty}
	}

	searchCtx, cancel := context.WithTimeout(ctx, s.actionTimeout)
	defer cancel()

	results, err := s.searchClient.Search(searchCtx, req.Message, s.searchMaxResults)
	if err != nil {
		s.logger.Warn("chat", "internet search failed", map[string]interface{}{
			"error": err.Error(),
		})
		return compose.SearchEvidence{Status: compose.SourceFailed, Err: err}
	}
	if len(results) == 0 {
		return compose.SearchEvidence{Status: compose.SourceEmpty}
	}

	return compose.SearchEvidence{Status: compose.SourceOK, Results: results}
}

func (s *chatService) gatherDocumentEvidence(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	sessionId uuid.UUID,
	query string,
	strategy retrieval.Strategy,
	k int,
	threadHistory []llm.Message,
) compose.DocumentEvidence {
	scored, err := s.retrievalEngine.Retrieve(ctx, uow.DocumentChunkRepository(), sessionId, query, strategy, k, threadHistory)
	if err != nil {
		s.logger.Warn("chat", "document retrieval failed", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return compose.DocumentEvidence{Status: compose.SourceFailed, Err: err}
	}
	if len(scored) == 0 {
		return compose.DocumentEvidence{Status: compose.SourceEmpty}
	}
	return compose.DocumentEvidence{Status: compose.SourceOK, Chunks: scored}
}

// persistTurn writes both messages of the exchange in one transaction
// and refreshes the thread stamp, so a half-written turn never lands.
func (s *chatService) persistTurn(ctx context.Context, thread *entity.Thread, created bool, userMessage, assistantMessage *entity.Message) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().CreateBulk(ctx, []*entity.Message{userMessage, assistantMessage}); err != nil {
		return err
	}

	now := time.Now()
	thread.UpdatedAt = &now
	if !created && thread.Title == "" {
		thread.Title = truncateRunes(userMessage.Content, threadTitleMaxRunes)
	}
	if err := uow.ThreadRepository().Update(ctx, thread); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *chatService) completionOptions(session *entity.Session) []llm.Option {
	var options []llm.Option
	if session.Temperature > 0 {
		options = append(options, llm.WithTemperature(session.Temperature))
	}
	if session.MaxTokens > 0 {
		options = append(options, llm.WithMaxTokens(session.MaxTokens))
	}
	if session.ModelName != "" {
		options = append(options, llm.WithModel(session.ModelName))
	}
	return options
}

func (s *chatService) traceTurn(threadId uuid.UUID, strategy retrieval.Strategy, tool compose.ToolEvidence, search compose.SearchEvidence, documents compose.DocumentEvidence) {
	if s.ragTrace == nil {
		return
	}
	s.ragTrace.Printf("thread=%s strategy=%s tool=%s search=%s documents=%s chunks=%d",
		threadId, strategy, tool.Status, search.Status, documents.Status, len(documents.Chunks))
}

func (s *chatService) ListThreads(ctx context.Context, sessionId uuid.UUID) ([]*dto.ThreadDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	threads, err := uow.ThreadRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ThreadDTO, len(threads))
	for i, thread := range threads {
		responses[i] = &dto.ThreadDTO{
			Id:        thread.Id,
			SessionId: thread.SessionId,
			Title:     thread.Title,
			CreatedAt: thread.CreatedAt,
			UpdatedAt: thread.UpdatedAt,
		}
	}
	return responses, nil
}

func (s *chatService) GetHistory(ctx context.Context, threadId uuid.UUID) (*dto.GetChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	records, err := uow.MessageRepository().FindAll(ctx,
		specification.ByThreadID{ThreadID: threadId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	messages := make([]*dto.MessageDTO, len(records))
	for i, record := range records {
		messages[i] = toMessageDTO(record)
	}
	return &dto.GetChatHistoryResponse{Messages: messages}, nil
}

func (s *chatService) ListStrategies() []*dto.StrategyDTO {
	strategies := retrieval.All()
	responses := make([]*dto.StrategyDTO, len(strategies))
	for i, strategy := range strategies {
		responses[i] = &dto.StrategyDTO{
			Name:        string(strategy),
			Description: strategy.Description(),
		}
	}
	return responses
}

func toMessageDTO(msg *entity.Message) *dto.MessageDTO {
	return &dto.MessageDTO{
		Id:          msg.Id,
		ThreadId:    msg.ThreadId,
		Role:        msg.Role,
		Content:     msg.Content,
		RagStrategy: msg.RagStrategy,
		Provenance:  msg.Provenance,
		CreatedAt:   msg.CreatedAt,
	}
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
