package repository

import (
	"github.com/Maya170605/customs-backend/internal/app/model"
	"gorm.io/gorm"
)

// UnpRepository reads the company-registry reference. The table is read-only
// at runtime; BulkCreate exists for the registry importer.
type UnpRepository interface {
	FindByUnp(unp string) (*model.Unp, error)
	Exists(unp string) (bool, error)
	Count() (int64, error)
	BulkCreate(unps []model.Unp, batchSize int) error
}

type unpRepository struct {
	db *gorm.DB
}

func NewUnpRepository(db *gorm.DB) UnpRepository {
	return &unpRepository{db: db}
}

func (r *unpRepository) FindByUnp(unp string) (*model.Unp, error) {
	var row model.Unp
	if err := r.db.Where("unp = ?", unp).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *unpRepository) Exists(unp string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Unp{}).Where("unp = ?", unp).Count(&count).Error
	return count > 0, err
}

func (r *unpRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Unp{}).Count(&count).Error
	return count, err
}

func (r *unpRepository) BulkCreate(unps []model.Unp, batchSize int) error {
	return r.db.CreateInBatches(unps, batchSize).Error
}
