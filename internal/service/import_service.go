package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"workflow-hub-be/internal/dto"
	"workflow-hub-be/internal/entity"
	"workflow-hub-be/internal/pkg/logger"
	"workflow-hub-be/internal/pkg/serverutils"
	"workflow-hub-be/internal/repository/specification"
	"workflow-hub-be/internal/repository/unitofwork"
	"workflow-hub-be/pkg/catalog"
	"workflow-hub-be/pkg/events"

	"github.com/google/uuid"
)

const importModule = "ImportService"

// Required string fields, in the order they are checked.
var requiredWorkflowFields = []string{
	"workflow_name",
	"workflow_url",
	"workflow_description",
	"creator_name",
	"creator_avatar",
}

type IImportService interface {
	// Import loads a JSON document shaped either as category objects each
	// carrying a "workflows" array, or as a flat array of workflow objects.
	// Nothing is written unless every record is valid.
	Import(ctx context.Context, raw []byte) (*dto.ImportResponse, error)
}

type importService struct {
	uowFactory unitofwork.RepositoryFactory
	publishers []events.Publisher
	catalog    ICatalogService
	logger     logger.ILogger
}

func NewImportService(
	uowFactory unitofwork.RepositoryFactory,
	catalog ICatalogService,
	log logger.ILogger,
	publishers ...events.Publisher,
) IImportService {
	return &importService{
		uowFactory: uowFactory,
		publishers: publishers,
		catalog:    catalog,
		logger:     log,
	}
}

// importGroup is the normalised form of both document shapes.
type importGroup struct {
	categoryURL string // empty for uncategorised flat records
	fullURL     string
	name        string
	workflows   []*entity.Workflow
}

func (s *importService) Import(ctx context.Context, raw []byte) (*dto.ImportResponse, error) {
	groups, err := parseImport(raw)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	res := &dto.ImportResponse{}
	touched := make(map[uuid.UUID]*entity.WorkflowCategory)

	for _, g := range groups {
		var categoryID *uuid.UUID
		if g.categoryURL != "" {
			category, err := s.upsertCategory(ctx, uow, g)
			if err != nil {
				return nil, err
			}
			if _, seen := touched[category.Id]; !seen {
				res.Categories++
			}
			touched[category.Id] = category
			categoryID = &category.Id
		}

		for _, w := range g.workflows {
			w.CategoryId = categoryID
		}
		if err := uow.WorkflowRepository().CreateBulk(ctx, g.workflows); err != nil {
			return nil, fmt.Errorf("insert workflows: %w", err)
		}
		res.Workflows += len(g.workflows)
	}

	for id, category := range touched {
		count, err := uow.WorkflowRepository().Count(ctx, specification.ByCategoryID{CategoryID: id})
		if err != nil {
			return nil, err
		}
		category.TotalCountExtracted = int(count)
		if err := uow.CategoryRepository().Update(ctx, category); err != nil {
			return nil, fmt.Errorf("update category %s: %w", category.CategoryUrl, err)
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.catalog.Invalidate()
	s.logger.Info(importModule, "Catalog import committed", map[string]interface{}{
		"categories": res.Categories,
		"workflows":  res.Workflows,
	})

	event := events.NewCatalogImported(res.Categories, res.Workflows)
	for _, p := range s.publishers {
		if err := p.Publish(ctx, event); err != nil {
			s.logger.Warn(importModule, "Failed to publish catalog.imported", map[string]interface{}{"error": err.Error()})
		}
	}

	return res, nil
}

func (s *importService) upsertCategory(ctx context.Context, uow unitofwork.UnitOfWork, g *importGroup) (*entity.WorkflowCategory, error) {
	repo := uow.CategoryRepository()

	existing, err := repo.FindOne(ctx, specification.ByCategoryURL{CategoryURL: g.categoryURL})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.FullUrl == "" && g.fullURL != "" {
			existing.FullUrl = g.fullURL
		}
		return existing, nil
	}

	name := g.name
	if name == "" {
		name = catalog.CategoryName(g.categoryURL)
	}
	category := &entity.WorkflowCategory{
		Id:          uuid.New(),
		CategoryUrl: g.categoryURL,
		FullUrl:     g.fullURL,
		Name:        name,
		CreatedAt:   time.Now(),
	}
	if err := repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category %s: %w", g.categoryURL, err)
	}
	return category, nil
}

// parseImport decodes and validates the whole document before anything is written.
func parseImport(raw []byte) ([]*importGroup, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, serverutils.BadRequest("Import file is empty")
	}

	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, serverutils.BadRequest("Invalid JSON format. Expected an array of category objects with workflows or an array of workflows.")
	}

	nested := 0
	for _, item := range items {
		if _, ok := item["workflows"]; ok {
			nested++
		}
	}
	if nested > 0 && nested != len(items) {
		return nil, serverutils.BadRequest("Invalid JSON format. Do not mix category objects and workflow objects.")
	}

	if nested > 0 {
		return parseNested(raw)
	}
	return parseFlat(raw)
}

func parseNested(raw []byte) ([]*importGroup, error) {
	var categories []dto.ImportCategory
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, serverutils.BadRequest("Invalid JSON format. Expected an array of category objects with workflows.")
	}

	groups := make([]*importGroup, 0, len(categories))
	index := 0
	for i, c := range categories {
		slug := strings.TrimSpace(c.CategoryUrl)
		if slug == "" {
			return nil, serverutils.BadRequest("Invalid JSON format. Category %d has no category_url.", i)
		}

		g := &importGroup{
			categoryURL: slug,
			fullURL:     strings.TrimSpace(c.FullUrl),
			name:        strings.TrimSpace(c.Name),
		}
		for _, rec := range c.Workflows {
			w, err := workflowFromRecord(rec, index)
			if err != nil {
				return nil, err
			}
			g.workflows = append(g.workflows, w)
			index++
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// parseFlat groups loose workflow records by their optional category_url.
func parseFlat(raw []byte) ([]*importGroup, error) {
	var records []map[string]interface{}
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, serverutils.BadRequest("Invalid JSON format. Expected an array of workflows.")
	}

	var groups []*importGroup
	bySlug := make(map[string]*importGroup)
	for i, rec := range records {
		w, err := workflowFromRecord(rec, i)
		if err != nil {
			return nil, err
		}

		slug, _ := rec["category_url"].(string)
		slug = strings.TrimSpace(slug)
		g, ok := bySlug[slug]
		if !ok {
			g = &importGroup{categoryURL: slug}
			bySlug[slug] = g
			groups = append(groups, g)
		}
		g.workflows = append(g.workflows, w)
	}
	return groups, nil
}

func workflowFromRecord(rec map[string]interface{}, index int) (*entity.Workflow, error) {
	name, _ := rec["workflow_name"].(string)
	name = strings.TrimSpace(name)

	values := make(map[string]string, len(requiredWorkflowFields))
	for _, field := range requiredWorkflowFields {
		v, _ := rec[field].(string)
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, &dto.ImportValidationError{Field: field, Workflow: name, Index: index}
		}
		values[field] = v
	}

	icons, ok := iconURLs(rec["icon_urls"])
	if !ok {
		return nil, &dto.ImportValidationError{Field: "icon_urls", Workflow: name, Index: index}
	}

	pricing, _ := rec["paid_or_free"].(string)
	if pricing != entity.PricingFree && pricing != entity.PricingPaid {
		reason := ""
		if strings.TrimSpace(pricing) != "" {
			reason = fmt.Sprintf("must be %q or %q", entity.PricingFree, entity.PricingPaid)
		}
		return nil, &dto.ImportValidationError{Field: "paid_or_free", Workflow: name, Index: index, Reason: reason}
	}

	createdBy, _ := rec["created_by"].(string)
	if createdBy = strings.TrimSpace(createdBy); createdBy == "" {
		createdBy = "system"
	}

	return &entity.Workflow{
		Id:            uuid.New(),
		Name:          values["workflow_name"],
		Url:           values["workflow_url"],
		Description:   values["workflow_description"],
		CreatorName:   values["creator_name"],
		CreatorAvatar: values["creator_avatar"],
		IconUrls:      icons,
		PaidOrFree:    pricing,
		CreatedBy:     createdBy,
		CreatedAt:     time.Now(),
	}, nil
}

// iconURLs accepts only a non-empty array of non-empty strings.
func iconURLs(v interface{}) ([]string, bool) {
	arr, ok := v.([]interface{})
	if !ok || len(arr) == 0 {
		return nil, false
	}
	out := make([]string, 0, len(arr))
	for _, x := range arr {
		s, ok := x.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return nil, false
		}
		out = append(out, strings.TrimSpace(s))
	}
	return out, true
}
