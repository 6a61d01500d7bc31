package controller

import (
	"docchat-be/internal/dto"
	"docchat-be/internal/pkg/serverutils"
	"docchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IToolController interface {
	RegisterRoutes(r fiber.Router)
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type toolController struct {
	toolService service.IToolService
}

func NewToolController(toolService service.IToolService) IToolController {
	return &toolController{
		toolService: toolService,
	}
}

func (c *toolController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/tool/v1")
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *toolController) Update(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateToolRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.toolService.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "tool not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update tool", res))
}

func (c *toolController) Delete(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.toolService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete tool", nil))
}
