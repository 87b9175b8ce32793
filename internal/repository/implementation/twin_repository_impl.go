package implementation

import (
	"context"
	"errors"

	"ai-boardroom-be/internal/entity"
	"ai-boardroom-be/internal/mapper"
	"ai-boardroom-be/internal/model"
	"ai-boardroom-be/internal/repository/contract"
	"ai-boardroom-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TwinRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TwinMapper
}

func NewTwinRepository(db *gorm.DB) contract.TwinRepository {
	return &TwinRepositoryImpl{
		db:     db,
		mapper: mapper.NewTwinMapper(),
	}
}

func (r *TwinRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TwinRepositoryImpl) Create(ctx context.Context, twin *entity.Twin) error {
	m := r.mapper.ToModel(twin)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*twin = *r.mapper.ToEntity(m)
	return nil
}

func (r *TwinRepositoryImpl) Update(ctx context.Context, twin *entity.Twin) error {
	m := r.mapper.ToModel(twin)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*twin = *r.mapper.ToEntity(m)
	return nil
}

func (r *TwinRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Twin{}, id).Error
}

func (r *TwinRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Twin, error) {
	var m model.Twin
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TwinRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Twin, error) {
	var models []*model.Twin
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *TwinRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Twin{}).Count(&count).Error
	return count, err
}
