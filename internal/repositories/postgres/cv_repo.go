package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/okamel/cvbank/internal/models"
	"github.com/okamel/cvbank/internal/repositories"
	"github.com/okamel/cvbank/internal/utils"
	"gorm.io/gorm"
)

type cvRepo struct {
	db *gorm.DB
}

func NewCVRepo(db *gorm.DB) repositories.CVRepository {
	return &cvRepo{db: db}
}

func (r *cvRepo) ListAll(ctx context.Context, limit int) ([]models.CV, error) {
	var rows []models.CV
	err := r.db.WithContext(ctx).
		Order("upload_date DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *cvRepo) ListByNationality(ctx context.Context, nationality string, limit int) ([]models.CV, error) {
	var rows []models.CV
	err := r.db.WithContext(ctx).
		Where("nationality = ?", nationality).
		Order("upload_date DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *cvRepo) GetByID(ctx context.Context, id string) (*models.CV, error) {
	// The column is a uuid; a malformed id can never match, so treat it as
	// not-found instead of letting the driver reject the query.
	if _, err := uuid.Parse(id); err != nil {
		return nil, utils.ErrNotFound
	}
	var row models.CV
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *cvRepo) Create(ctx context.Context, cv *models.CV) error {
	return r.db.WithContext(ctx).Create(cv).Error
}

func (r *cvRepo) Update(ctx context.Context, id string, upd models.CVUpdate) (*models.CV, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, utils.ErrNotFound
	}
	vals := upd.Changes()
	if len(vals) > 0 {
		res := r.db.WithContext(ctx).
			Model(&models.CV{}).
			Where("id = ?", id).
			Updates(vals)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, utils.ErrNotFound
		}
	}
	return r.GetByID(ctx, id)
}

func (r *cvRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return utils.ErrNotFound
	}
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.CV{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
