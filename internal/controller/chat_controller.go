package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"docchat-be/internal/dto"
	"docchat-be/internal/pkg/serverutils"
	"docchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	SendMessageStream(ctx *fiber.Ctx) error
	ListThreads(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	ListStrategies(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("message", c.SendMessage)
	h.Post("message/stream", c.SendMessageStream)
	h.Get("threads/:sessionId", c.ListThreads)
	h.Get("history/:threadId", c.GetHistory)
	h.Get("strategies", c.ListStrategies)
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendChat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

// SendMessageStream runs the same turn as SendMessage but delivers the
// reply as server-sent events. The full reply is composed first, then
// chunked a few words at a time; the last chunk carries is_complete.
func (c *chatController) SendMessageStream(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")

	chatService := c.chatService
	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		// The stream writer runs after the handler returns, so the
		// turn is detached from the request context.
		res, err := chatService.SendChat(context.Background(), &req)
		if err != nil {
			writeStreamChunk(w, &dto.StreamMessageChunk{
				Content:    "Error: " + err.Error(),
				IsComplete: true,
			})
			return
		}
		streamReply(w, res)
	}))

	return nil
}

func streamReply(w *bufio.Writer, res *dto.SendMessageResponse) {
	words := strings.Fields(res.Reply.Content)
	if len(words) == 0 {
		writeStreamChunk(w, &dto.StreamMessageChunk{
			ThreadId:    &res.ThreadId,
			IsComplete:  true,
			RagStrategy: res.Reply.RagStrategy,
		})
		return
	}

	var batch []string
	for i, word := range words {
		batch = append(batch, word)
		last := i == len(words)-1
		if len(batch) == 3 || last {
			writeStreamChunk(w, &dto.StreamMessageChunk{
				ThreadId:    &res.ThreadId,
				Content:     strings.Join(batch, " "),
				IsComplete:  last,
				RagStrategy: res.Reply.RagStrategy,
			})
			batch = batch[:0]
		}
	}
}

func writeStreamChunk(w *bufio.Writer, chunk *dto.StreamMessageChunk) {
	payload, err := json.Marshal(chunk)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", payload)
	w.Flush()
}

func (c *chatController) ListThreads(ctx *fiber.Ctx) error {
	sessionId, err := parseIdParam(ctx, "sessionId")
	if err != nil {
		return err
	}

	res, err := c.chatService.ListThreads(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list threads", res))
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	threadId, err := parseIdParam(ctx, "threadId")
	if err != nil {
		return err
	}

	res, err := c.chatService.GetHistory(ctx.Context(), threadId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatController) ListStrategies(ctx *fiber.Ctx) error {
	res := c.chatService.ListStrategies()
	return ctx.JSON(serverutils.SuccessResponse("Success list strategies", res))
}

func parseIdParam(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
