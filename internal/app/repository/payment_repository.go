package repository

import (
	"time"

	"github.com/Maya170605/customs-backend/internal/app/model"
	"github.com/Maya170605/customs-backend/pkg/logger"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(payment *model.Payment) error
	FindByID(id uint) (*model.Payment, error)
	FindAll() ([]model.Payment, error)
	FindByClientID(clientID uint) ([]model.Payment, error)
	FindByStatus(status model.PaymentStatus) ([]model.Payment, error)
	FindByDeclarationID(declarationID uint) ([]model.Payment, error)
	FindOverdueByClient(clientID uint, today time.Time) ([]model.Payment, error)
	Update(payment *model.Payment) error
	Delete(id uint) error
	Count() (int64, error)
	ExistsByNumber(number string) (bool, error)
	TotalAmountByClient(clientID uint) (float64, error)
	TotalAmountByClientAndStatus(clientID uint, status model.PaymentStatus) (float64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *model.Payment) error {
	if err := r.db.Create(payment).Error; err != nil {
		logger.Error("Failed to create payment in database", err, map[string]interface{}{
			"payment_number": payment.PaymentNumber,
		})
		return err
	}
	return nil
}

func (r *paymentRepository) FindByID(id uint) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.Preload("Client").Preload("Declaration").First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindAll() ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.Preload("Client").Preload("Declaration").Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) FindByClientID(clientID uint) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.Preload("Client").Preload("Declaration").
		Where("client_id = ?", clientID).Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) FindByStatus(status model.PaymentStatus) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.Preload("Client").Preload("Declaration").
		Where("status = ?", status).Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) FindByDeclarationID(declarationID uint) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.Preload("Client").Preload("Declaration").
		Where("declaration_id = ?", declarationID).Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) FindOverdueByClient(clientID uint, today time.Time) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.Preload("Client").Preload("Declaration").
		Where("client_id = ? AND status = ? AND due_date < ?", clientID, model.PaymentStatusPending, today).
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) Update(payment *model.Payment) error {
	return r.db.Save(payment).Error
}

func (r *paymentRepository) Delete(id uint) error {
	return r.db.Delete(&model.Payment{}, id).Error
}

func (r *paymentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Payment{}).Count(&count).Error
	return count, err
}

func (r *paymentRepository) ExistsByNumber(number string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Payment{}).Where("payment_number = ?", number).Count(&count).Error
	return count > 0, err
}

func (r *paymentRepository) TotalAmountByClient(clientID uint) (float64, error) {
	var total float64
	err := r.db.Model(&model.Payment{}).
		Where("client_id = ?", clientID).
		Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}

func (r *paymentRepository) TotalAmountByClientAndStatus(clientID uint, status model.PaymentStatus) (float64, error) {
	var total float64
	err := r.db.Model(&model.Payment{}).
		Where("client_id = ? AND status = ?", clientID, status).
		Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}
