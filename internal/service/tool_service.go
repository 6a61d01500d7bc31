package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"docchat-be/internal/constant"
	"docchat-be/internal/dto"
	"docchat-be/internal/entity"
	"docchat-be/internal/repository/specification"
	"docchat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IToolService interface {
	Create(ctx context.Context, sessionId uuid.UUID, req *dto.CreateToolRequest) (*dto.ToolResponse, error)
	List(ctx context.Context, sessionId uuid.UUID) ([]*dto.ToolResponse, error)
	Update(ctx context.Context, req *dto.UpdateToolRequest) (*dto.ToolResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type toolService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewToolService(uowFactory unitofwork.RepositoryFactory) IToolService {
	return &toolService{
		uowFactory: uowFactory,
	}
}

// validateBinding enforces the type invariants: api tools need a url,
// function tools need a registered function name. The executor checks
// the same invariants again at invocation time.
func validateBinding(toolType, apiUrl, functionName string) error {
	switch toolType {
	case constant.ToolTypeAPI:
		if apiUrl == "" {
			return fmt.Errorf("api tools require api_url")
		}
	case constant.ToolTypeFunction:
		if functionName == "" {
			return fmt.Errorf("function tools require function_name")
		}
	default:
		return fmt.Errorf("unknown tool_type %q", toolType)
	}
	return nil
}

func (s *toolService) Create(ctx context.Context, sessionId uuid.UUID, req *dto.CreateToolRequest) (*dto.ToolResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session %s not found", sessionId)
	}

	if err := validateBinding(req.ToolType, req.ApiUrl, req.FunctionName); err != nil {
		return nil, err
	}

	existing, err := uow.ToolRepository().FindOne(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.ByName{Name: req.Name},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("tool %q already exists in this session", req.Name)
	}

	tool := entity.Tool{
		Id:               uuid.New(),
		SessionId:        sessionId,
		Name:             req.Name,
		ToolType:         req.ToolType,
		ApiUrl:           req.ApiUrl,
		HttpMethod:       strings.ToUpper(req.HttpMethod),
		FunctionName:     req.FunctionName,
		Description:      req.Description,
		ParamsDocstring:  req.ParamsDocstring,
		ReturnsDocstring: req.ReturnsDocstring,
		CreatedAt:        time.Now(),
	}

	if err := uow.ToolRepository().Create(ctx, &tool); err != nil {
		return nil, err
	}

	return s.toResponse(&tool), nil
}

func (s *toolService) List(ctx context.Context, sessionId uuid.UUID) ([]*dto.ToolResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tools, err := uow.ToolRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ToolResponse, len(tools))
	for i, tool := range tools {
		responses[i] = s.toResponse(tool)
	}
	return responses, nil
}

func (s *toolService) Update(ctx context.Context, req *dto.UpdateToolRequest) (*dto.ToolResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tool, err := uow.ToolRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if tool == nil {
		return nil, nil
	}

	if req.Name != nil {
		tool.Name = *req.Name
	}
	if req.ApiUrl != nil {
		tool.ApiUrl = *req.ApiUrl
	}
	if req.HttpMethod != nil {
		tool.HttpMethod = strings.ToUpper(*req.HttpMethod)
	}
	if req.FunctionName != nil {
		tool.FunctionName = *req.FunctionName
	}
	if req.Description != nil {
		tool.Description = *req.Description
	}
	if req.ParamsDocstring != nil {
		tool.ParamsDocstring = *req.ParamsDocstring
	}
	if req.ReturnsDocstring != nil {
		tool.ReturnsDocstring = *req.ReturnsDocstring
	}

	if err := validateBinding(tool.ToolType, tool.ApiUrl, tool.FunctionName); err != nil {
		return nil, err
	}

	now := time.Now()
	tool.UpdatedAt = &now

	if err := uow.ToolRepository().Update(ctx, tool); err != nil {
		return nil, err
	}

	return s.toResponse(tool), nil
}

func (s *toolService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ToolRepository().Delete(ctx, id)
}

func (s *toolService) toResponse(tool *entity.Tool) *dto.ToolResponse {
	return &dto.ToolResponse{
		Id:               tool.Id,
		SessionId:        tool.SessionId,
		Name:             tool.Name,
		ToolType:         tool.ToolType,
		ApiUrl:           tool.ApiUrl,
		HttpMethod:       tool.HttpMethod,
		FunctionName:     tool.FunctionName,
		Description:      tool.Description,
		ParamsDocstring:  tool.ParamsDocstring,
		ReturnsDocstring: tool.ReturnsDocstring,
		CreatedAt:        tool.CreatedAt,
		UpdatedAt:        tool.UpdatedAt,
	}
}
