package persistent

import (
	"inkwell/internal/entity"
	"inkwell/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AuthorRepository interface {
	Upsert(author *entity.Author) error
	GetByExternalID(externalID string) (*entity.Author, error)
	DeleteByExternalID(externalID string) (int64, error)
}

type authorRepository struct {
	db *gorm.DB
}

func NewAuthorRepository(db *gorm.DB) AuthorRepository {
	return &authorRepository{db: db}
}

// Upsert creates or refreshes the local mirror of an identity provider
// user, keyed by external_id. Only the denormalized profile attributes are
// ever updated; the internal id is stable across syncs.
func (r *authorRepository) Upsert(author *entity.Author) error {
	authorModel := ToAuthorModel(author)

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "updated_at"}),
	}).Create(authorModel).Error
	if err != nil {
		return err
	}

	// Re-read so the caller sees the canonical row (the stored id on a
	// conflicting upsert, not the freshly generated one).
	var stored model.AuthorModel
	if err := r.db.Where("external_id = ?", authorModel.ExternalID).First(&stored).Error; err != nil {
		return err
	}

	*author = *ToAuthorEntity(&stored)
	return nil
}

func (r *authorRepository) GetByExternalID(externalID string) (*entity.Author, error) {
	var authorModel model.AuthorModel
	if err := r.db.Where("external_id = ?", externalID).First(&authorModel).Error; err != nil {
		return nil, err
	}
	return ToAuthorEntity(&authorModel), nil
}

func (r *authorRepository) DeleteByExternalID(externalID string) (int64, error) {
	res := r.db.Where("external_id = ?", externalID).Delete(&model.AuthorModel{})
	return res.RowsAffected, res.Error
}
