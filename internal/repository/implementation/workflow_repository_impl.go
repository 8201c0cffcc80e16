package implementation

import (
	"context"
	"errors"

	"workflow-hub-be/internal/entity"
	"workflow-hub-be/internal/mapper"
	"workflow-hub-be/internal/model"
	"workflow-hub-be/internal/repository/contract"
	"workflow-hub-be/internal/repository/specification"

	"gorm.io/gorm"
)

const createBatchSize = 100

type WorkflowRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.WorkflowMapper
}

func NewWorkflowRepository(db *gorm.DB) contract.WorkflowRepository {
	return &WorkflowRepositoryImpl{
		db:     db,
		mapper: mapper.NewWorkflowMapper(),
	}
}

func (r *WorkflowRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *WorkflowRepositoryImpl) CreateBulk(ctx context.Context, workflows []*entity.Workflow) error {
	if len(workflows) == 0 {
		return nil
	}

	models := make([]*model.Workflow, len(workflows))
	for i, w := range workflows {
		models[i] = r.mapper.WorkflowToModel(w)
	}

	if err := r.db.WithContext(ctx).Omit("Category").CreateInBatches(models, createBatchSize).Error; err != nil {
		return err
	}

	for i, m := range models {
		workflows[i].CreatedAt = m.CreatedAt
	}
	return nil
}

func (r *WorkflowRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Workflow, error) {
	var m model.Workflow
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Workflow{}), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.WorkflowToEntity(&m), nil
}

func (r *WorkflowRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Workflow, error) {
	var models []*model.Workflow
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Workflow{}), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.WorkflowsToEntities(models), nil
}

func (r *WorkflowRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Workflow{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
