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

type WaitlistRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.WaitlistMapper
}

func NewWaitlistRepository(db *gorm.DB) contract.WaitlistRepository {
	return &WaitlistRepositoryImpl{
		db:     db,
		mapper: mapper.NewWaitlistMapper(),
	}
}

func (r *WaitlistRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *WaitlistRepositoryImpl) Create(ctx context.Context, entry *entity.WaitlistEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *WaitlistRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WaitlistEntry, error) {
	var m model.WaitlistEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
