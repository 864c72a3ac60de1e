package repository

import (
	"github.com/Maya170605/customs-backend/internal/app/model"
	"github.com/Maya170605/customs-backend/pkg/logger"
	"gorm.io/gorm"
)

type DeclarationRepository interface {
	Create(declaration *model.Declaration) error
	FindByID(id uint) (*model.Declaration, error)
	FindAll() ([]model.Declaration, error)
	FindByClientID(clientID uint) ([]model.Declaration, error)
	FindByStatus(status string) ([]model.Declaration, error)
	Update(declaration *model.Declaration) error
	Delete(id uint) error
	Count() (int64, error)
	CountByClient(clientID uint) (int64, error)
	CountByClientAndStatus(clientID uint, status string) (int64, error)
	ExistsByNumber(number string) (bool, error)
}

type declarationRepository struct {
	db *gorm.DB
}

func NewDeclarationRepository(db *gorm.DB) DeclarationRepository {
	return &declarationRepository{db: db}
}

func (r *declarationRepository) Create(declaration *model.Declaration) error {
	if err := r.db.Create(declaration).Error; err != nil {
		logger.Error("Failed to create declaration in database", err, map[string]interface{}{
			"declaration_number": declaration.DeclarationNumber,
		})
		return err
	}
	return nil
}

func (r *declarationRepository) FindByID(id uint) (*model.Declaration, error) {
	var declaration model.Declaration
	if err := r.db.Preload("Client").First(&declaration, id).Error; err != nil {
		return nil, err
	}
	return &declaration, nil
}

func (r *declarationRepository) FindAll() ([]model.Declaration, error) {
	var declarations []model.Declaration
	if err := r.db.Preload("Client").Find(&declarations).Error; err != nil {
		return nil, err
	}
	return declarations, nil
}

func (r *declarationRepository) FindByClientID(clientID uint) ([]model.Declaration, error) {
	var declarations []model.Declaration
	err := r.db.Preload("Client").Where("client_id = ?", clientID).Find(&declarations).Error
	if err != nil {
		return nil, err
	}
	return declarations, nil
}

func (r *declarationRepository) FindByStatus(status string) ([]model.Declaration, error) {
	var declarations []model.Declaration
	err := r.db.Preload("Client").Where("status = ?", status).Find(&declarations).Error
	if err != nil {
		return nil, err
	}
	return declarations, nil
}

func (r *declarationRepository) Update(declaration *model.Declaration) error {
	return r.db.Save(declaration).Error
}

func (r *declarationRepository) Delete(id uint) error {
	return r.db.Delete(&model.Declaration{}, id).Error
}

func (r *declarationRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Declaration{}).Count(&count).Error
	return count, err
}

func (r *declarationRepository) CountByClient(clientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Declaration{}).Where("client_id = ?", clientID).Count(&count).Error
	return count, err
}

func (r *declarationRepository) CountByClientAndStatus(clientID uint, status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Declaration{}).
		Where("client_id = ? AND status = ?", clientID, status).
		Count(&count).Error
	return count, err
}

func (r *declarationRepository) ExistsByNumber(number string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Declaration{}).Where("declaration_number = ?", number).Count(&count).Error
	return count > 0, err
}
