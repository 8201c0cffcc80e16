package service

import (
	"context"
	"strings"

	"workflow-hub-be/internal/dto"
	"workflow-hub-be/internal/entity"
	"workflow-hub-be/internal/pkg/serverutils"
	"workflow-hub-be/internal/repository/memory"
	"workflow-hub-be/internal/repository/specification"
	"workflow-hub-be/internal/repository/unitofwork"
	"workflow-hub-be/pkg/catalog"
)

type ICatalogService interface {
	List(ctx context.Context, request *dto.ListWorkflowsRequest) ([]*dto.WorkflowResponse, error)
	GetByName(ctx context.Context, name string) (*dto.WorkflowResponse, error)
	Categories(ctx context.Context) ([]*dto.CategoryResponse, error)
	// Snapshot returns the whole catalog with categories loaded, oldest first.
	Snapshot(ctx context.Context) ([]*entity.Workflow, error)
	Invalidate()
}

type catalogService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.CatalogCache // nil disables caching
}

func NewCatalogService(uowFactory unitofwork.RepositoryFactory, cache *memory.CatalogCache) ICatalogService {
	return &catalogService{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

func (s *catalogService) List(ctx context.Context, request *dto.ListWorkflowsRequest) ([]*dto.WorkflowResponse, error) {
	var matched []*entity.Workflow
	if s.cache == nil {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		var err error
		matched, err = uow.WorkflowRepository().FindAll(ctx,
			specification.WorkflowSearchQuery{Query: request.Query},
			specification.ByCategorySlug{Slug: request.Category},
			specification.WithCategory{},
			specification.OrderBy{Field: "workflow.created_at"},
		)
		if err != nil {
			return nil, err
		}
	} else {
		workflows, err := s.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		matched = catalog.Filter(workflows, catalog.Query{
			Text:     request.Query,
			Category: request.Category,
		})
	}

	res := make([]*dto.WorkflowResponse, 0, len(matched))
	for _, w := range matched {
		res = append(res, toWorkflowResponse(w))
	}
	return res, nil
}

func (s *catalogService) GetByName(ctx context.Context, name string) (*dto.WorkflowResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, serverutils.BadRequest("workflow name is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	workflow, err := uow.WorkflowRepository().FindOne(ctx,
		specification.ByWorkflowName{Name: name},
		specification.WithCategory{},
	)
	if err != nil {
		return nil, err
	}
	if workflow == nil {
		return nil, serverutils.NotFound("workflow %q not found", name)
	}

	return toWorkflowResponse(workflow), nil
}

func (s *catalogService) Categories(ctx context.Context) ([]*dto.CategoryResponse, error) {
	categories, ok := s.cachedCategories()
	if !ok {
		gen := s.generation()
		uow := s.uowFactory.NewUnitOfWork(ctx)
		var err error
		categories, err = uow.CategoryRepository().FindAll(ctx, specification.OrderBy{Field: "name"})
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			s.cache.SetCategories(gen, categories)
		}
	}

	res := make([]*dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		res = append(res, &dto.CategoryResponse{
			Id:                  c.Id,
			CategoryUrl:         c.CategoryUrl,
			FullUrl:             c.FullUrl,
			Name:                c.Name,
			TotalCountExtracted: c.TotalCountExtracted,
		})
	}
	return res, nil
}

func (s *catalogService) Snapshot(ctx context.Context) ([]*entity.Workflow, error) {
	if s.cache != nil {
		if workflows, ok := s.cache.Workflows(); ok {
			return workflows, nil
		}
	}

	gen := s.generation()
	uow := s.uowFactory.NewUnitOfWork(ctx)
	workflows, err := uow.WorkflowRepository().FindAll(ctx,
		specification.WithCategory{},
		specification.OrderBy{Field: "workflow.created_at"},
	)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetWorkflows(gen, workflows)
	}
	return workflows, nil
}

func (s *catalogService) Invalidate() {
	if s.cache != nil {
		s.cache.Invalidate()
	}
}

func (s *catalogService) generation() uint64 {
	if s.cache == nil {
		return 0
	}
	return s.cache.Generation()
}

func (s *catalogService) cachedCategories() ([]*entity.WorkflowCategory, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Categories()
}

func toWorkflowResponse(w *entity.Workflow) *dto.WorkflowResponse {
	res := &dto.WorkflowResponse{
		Id:                  w.Id,
		WorkflowName:        w.Name,
		WorkflowUrl:         w.Url,
		WorkflowDescription: w.Description,
		CreatorName:         w.CreatorName,
		CreatorAvatar:       w.CreatorAvatar,
		IconUrls:            w.IconUrls,
		PaidOrFree:          w.PaidOrFree,
		CreatedBy:           w.CreatedBy,
		CreatedAt:           w.CreatedAt,
	}
	if res.IconUrls == nil {
		res.IconUrls = []string{}
	}
	if w.Category != nil {
		res.CategoryUrl = w.Category.CategoryUrl
		res.CategoryName = w.Category.Name
	}
	return res
}
