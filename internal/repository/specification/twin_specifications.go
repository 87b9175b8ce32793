package specification

import "gorm.io/gorm"

// ByOwnerKey filters twins by their owner.
type ByOwnerKey struct {
	OwnerKey string
}

func (s ByOwnerKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_key = ?", s.OwnerKey)
}

// ByCollection filters twin embeddings by their partition name.
type ByCollection struct {
	Collection string
}

func (s ByCollection) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("collection = ?", s.Collection)
}

// BySourceType filters twin embeddings by where the data came from.
type BySourceType struct {
	SourceType string
}

func (s BySourceType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source_type = ?", s.SourceType)
}
