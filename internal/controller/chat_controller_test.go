package controller

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"docchat-be/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatService struct {
	res *dto.SendMessageResponse
	err error
}

func (f *fakeChatService) SendChat(_ context.Context, _ *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	return f.res, f.err
}

func (f *fakeChatService) ListThreads(_ context.Context, _ uuid.UUID) ([]*dto.ThreadDTO, error) {
	return nil, nil
}

func (f *fakeChatService) GetHistory(_ context.Context, _ uuid.UUID) (*dto.GetChatHistoryResponse, error) {
	return nil, nil
}

func (f *fakeChatService) ListStrategies() []*dto.StrategyDTO {
	return nil
}

func newStreamTestApp(svc *fakeChatService) *fiber.App {
	app := fiber.New()
	NewChatController(svc).RegisterRoutes(app.Group("/api"))
	return app
}

func streamRequest(t *testing.T, app *fiber.App, body string) (string, string) {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/chat/v1/message/stream", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw), resp.Header.Get(fiber.HeaderContentType)
}

func TestSendMessageStreamEmitsChunkedReply(t *testing.T) {
	threadId := uuid.New()
	svc := &fakeChatService{res: &dto.SendMessageResponse{
		ThreadId: threadId,
		Reply: &dto.MessageDTO{
			Role:        "assistant",
			Content:     "alpha beta gamma delta",
			RagStrategy: "contextual",
		},
	}}
	app := newStreamTestApp(svc)

	body, contentType := streamRequest(t, app, `{"session_id":"`+uuid.NewString()+`","message":"hi"}`)

	assert.Contains(t, contentType, "text/event-stream")

	events := strings.Split(strings.TrimSpace(body), "\n\n")
	require.Len(t, events, 2)
	assert.Contains(t, events[0], `"content":"alpha beta gamma"`)
	assert.Contains(t, events[0], `"is_complete":false`)
	assert.Contains(t, events[1], `"content":"delta"`)
	assert.Contains(t, events[1], `"is_complete":true`)
	assert.Contains(t, events[1], `"rag_strategy":"contextual"`)
	assert.Contains(t, events[1], threadId.String())
	for _, e := range events {
		assert.True(t, strings.HasPrefix(e, "data: "))
	}
}

func TestSendMessageStreamTurnFailureEmitsErrorEvent(t *testing.T) {
	app := newStreamTestApp(&fakeChatService{err: errors.New("session not found")})

	body, _ := streamRequest(t, app, `{"session_id":"`+uuid.NewString()+`","message":"hi"}`)

	assert.Contains(t, body, "data: ")
	assert.Contains(t, body, `"content":"Error: session not found"`)
	assert.Contains(t, body, `"is_complete":true`)
}

func TestSendMessageStreamRejectsInvalidRequest(t *testing.T) {
	app := newStreamTestApp(&fakeChatService{})

	req := httptest.NewRequest("POST", "/api/chat/v1/message/stream", strings.NewReader(`{"message":""}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	assert.NotEqual(t, fiber.StatusOK, resp.StatusCode)
}
