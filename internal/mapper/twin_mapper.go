package mapper

import (
	"fmt"
	"time"

	"ai-boardroom-be/internal/entity"
	"ai-boardroom-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TwinMapper struct{}

func NewTwinMapper() *TwinMapper {
	return &TwinMapper{}
}

func (m *TwinMapper) ToEntity(t *model.Twin) *entity.Twin {
	if t == nil {
		return nil
	}

	var deletedAt *time.Time
	if t.DeletedAt.Valid {
		ts := t.DeletedAt.Time
		deletedAt = &ts
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		ts := t.UpdatedAt
		updatedAt = &ts
	}

	profile := make(map[string]string, len(t.Profile))
	for k, v := range t.Profile {
		profile[k] = fmt.Sprintf("%v", v)
	}

	return &entity.Twin{
		Id:        t.Id,
		Name:      t.Name,
		OwnerKey:  t.OwnerKey,
		Profile:   profile,
		CreatedAt: t.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: t.DeletedAt.Valid,
	}
}

func (m *TwinMapper) ToModel(t *entity.Twin) *model.Twin {
	if t == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if t.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *t.DeletedAt, Valid: true}
	} else if t.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	profile := make(datatypes.JSONMap, len(t.Profile))
	for k, v := range t.Profile {
		profile[k] = v
	}

	return &model.Twin{
		Id:        t.Id,
		Name:      t.Name,
		OwnerKey:  t.OwnerKey,
		Profile:   profile,
		CreatedAt: t.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *TwinMapper) ToEntities(twins []*model.Twin) []*entity.Twin {
	entities := make([]*entity.Twin, len(twins))
	for i, t := range twins {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
