package history

import (
	"context"

	"docchat-be/internal/constant"
	"docchat-be/internal/repository/specification"
	"docchat-be/internal/repository/unitofwork"
	"docchat-be/pkg/llm"

	"github.com/google/uuid"
)

// Loader reads conversation memory for a thread. Memory is append
// only: the loader never mutates messages, it only selects and
// truncates.
type Loader struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewLoader(uowFactory unitofwork.RepositoryFactory) *Loader {
	return &Loader{
		uowFactory: uowFactory,
	}
}

// LoadThreadHistory loads a thread's messages oldest first, mapped to
// provider-agnostic roles.
func (l *Loader) LoadThreadHistory(ctx context.Context, threadId uuid.UUID) ([]llm.Message, error) {
	uow := l.uowFactory.NewUnitOfWork(ctx)

	records, err := uow.MessageRepository().FindAll(ctx,
		specification.ByThreadID{ThreadID: threadId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	messages := make([]llm.Message, 0, len(records))
	for _, record := range records {
		role := "user"
		if record.Role == constant.MessageRoleAssistant {
			role = "assistant"
		}
		messages = append(messages, llm.Message{
			Role:    role,
			Content: record.Content,
		})
	}

	return messages, nil
}

// Truncate drops the OLDEST whole messages until the summed content
// length fits the budget. Messages are never split; a single message
// larger than the budget leaves the history empty.
func Truncate(messages []llm.Message, budget int) []llm.Message {
	if budget <= 0 {
		return nil
	}

	total := 0
	for _, msg := range messages {
		total += len(msg.Content)
	}

	start := 0
	for total > budget && start < len(messages) {
		total -= len(messages[start].Content)
		start++
	}

	return messages[start:]
}
