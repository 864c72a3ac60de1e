package service

import (
	"time"

	"github.com/Maya170605/customs-backend/internal/app/model"
	"github.com/Maya170605/customs-backend/internal/app/repository"
	"github.com/Maya170605/customs-backend/internal/errors"
	"github.com/Maya170605/customs-backend/pkg/logger"
)

// PaymentRequest carries the mutable payment fields for create and update.
type PaymentRequest struct {
	ClientID      uint       `json:"clientId"`
	DeclarationID *uint      `json:"declarationId"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency"`
	PaymentType   string     `json:"paymentType"`
	DueDate       *time.Time `json:"dueDate"`
}

// PaymentStats is the per-client aggregate payload.
type PaymentStats struct {
	TotalAmount   float64 `json:"totalAmount"`
	PaidAmount    float64 `json:"paidAmount"`
	PendingAmount float64 `json:"pendingAmount"`
}

type PaymentService interface {
	Create(req PaymentRequest) (*model.Payment, error)
	GetByID(id uint) (*model.Payment, error)
	GetAll() ([]model.Payment, error)
	GetByClientID(clientID uint) ([]model.Payment, error)
	GetByStatus(status string) ([]model.Payment, error)
	GetByDeclarationID(declarationID uint) ([]model.Payment, error)
	GetOverdueByClient(clientID uint) ([]model.Payment, error)
	Update(id uint, req PaymentRequest, admin bool) (*model.Payment, error)
	UpdateStatus(id uint, status string) (*model.Payment, error)
	Process(id uint) (*model.Payment, error)
	Delete(id uint, admin bool) error
	StatsByClient(clientID uint) (*PaymentStats, error)
	IsOwner(id, userID uint) (bool, error)
}

type paymentService struct {
	paymentRepo     repository.PaymentRepository
	declarationRepo repository.DeclarationRepository
	userRepo        repository.UserRepository
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	declarationRepo repository.DeclarationRepository,
	userRepo repository.UserRepository,
) PaymentService {
	return &paymentService{
		paymentRepo:     paymentRepo,
		declarationRepo: declarationRepo,
		userRepo:        userRepo,
	}
}

// Create registers a PENDING payment with a generated number. Omitted fields
// take their defaults: currency EUR, due date two weeks out.
func (s *paymentService) Create(req PaymentRequest) (*model.Payment, error) {
	if req.ClientID == 0 {
		return nil, errors.Validation("ID клиента обязателен")
	}
	if req.Amount < 0 {
		return nil, errors.Validation("Сумма платежа не может быть отрицательной")
	}
	if _, err := s.userRepo.FindByID(req.ClientID); err != nil {
		return nil, errors.ParseDBError(err, "Клиент не найден")
	}
	if req.DeclarationID != nil {
		if _, err := s.declarationRepo.FindByID(*req.DeclarationID); err != nil {
			return nil, errors.ParseDBError(err, "Декларация не найдена")
		}
	}

	number, err := nextDocumentNumber("PMT", s.paymentRepo.Count, s.paymentRepo.ExistsByNumber)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "EUR"
	}
	dueDate := req.DueDate
	if dueDate == nil {
		d := time.Now().AddDate(0, 0, 14)
		dueDate = &d
	}

	payment := &model.Payment{
		PaymentNumber: number,
		ClientID:      req.ClientID,
		DeclarationID: req.DeclarationID,
		Amount:        req.Amount,
		Currency:      currency,
		PaymentType:   req.PaymentType,
		Status:        model.PaymentStatusPending,
		DueDate:       dueDate,
	}

	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, errors.ParseDBError(err, "Платеж не найден")
	}

	logger.Info("Payment created", map[string]interface{}{
		"payment_id":     payment.ID,
		"payment_number": payment.PaymentNumber,
		"client_id":      payment.ClientID,
	})

	return s.paymentRepo.FindByID(payment.ID)
}

func (s *paymentService) GetByID(id uint) (*model.Payment, error) {
	payment, err := s.paymentRepo.FindByID(id)
	if err != nil {
		return nil, errors.ParseDBError(err, "Платеж не найден")
	}
	return payment, nil
}

func (s *paymentService) GetAll() ([]model.Payment, error) {
	return s.paymentRepo.FindAll()
}

func (s *paymentService) GetByClientID(clientID uint) ([]model.Payment, error) {
	return s.paymentRepo.FindByClientID(clientID)
}

func (s *paymentService) GetByStatus(status string) ([]model.Payment, error) {
	parsed, ok := model.ParsePaymentStatus(status)
	if !ok {
		return nil, errors.Validationf("Неизвестный статус платежа: %s", status)
	}
	return s.paymentRepo.FindByStatus(parsed)
}

func (s *paymentService) GetByDeclarationID(declarationID uint) ([]model.Payment, error) {
	if _, err := s.declarationRepo.FindByID(declarationID); err != nil {
		return nil, errors.ParseDBError(err, "Декларация не найдена")
	}
	return s.paymentRepo.FindByDeclarationID(declarationID)
}

func (s *paymentService) GetOverdueByClient(clientID uint) ([]model.Payment, error) {
	return s.paymentRepo.FindOverdueByClient(clientID, time.Now())
}

// Update rewrites the mutable fields. Non-administrators may only touch a
// payment that is still PENDING.
func (s *paymentService) Update(id uint, req PaymentRequest, admin bool) (*model.Payment, error) {
	payment, err := s.paymentRepo.FindByID(id)
	if err != nil {
		return nil, errors.ParseDBError(err, "Платеж не найден")
	}

	if !admin && payment.Status != model.PaymentStatusPending {
		return nil, errors.Lifecycle("Редактирование невозможно. Платеж уже обработан.")
	}
	if req.Amount < 0 {
		return nil, errors.Validation("Сумма платежа не может быть отрицательной")
	}

	payment.Amount = req.Amount
	if req.Currency != "" {
		payment.Currency = req.Currency
	}
	payment.PaymentType = req.PaymentType
	if req.DueDate != nil {
		payment.DueDate = req.DueDate
	}
	if req.DeclarationID != nil {
		if _, err := s.declarationRepo.FindByID(*req.DeclarationID); err != nil {
			return nil, errors.ParseDBError(err, "Декларация не найдена")
		}
		payment.DeclarationID = req.DeclarationID
	}

	if err := s.paymentRepo.Update(payment); err != nil {
		return nil, errors.ParseDBError(err, "Платеж не найден")
	}
	return payment, nil
}

// UpdateStatus moves the payment to any recognized status. Entering PAID
// stamps paidAt when not already set; leaving PAID clears it.
func (s *paymentService) UpdateStatus(id uint, status string) (*model.Payment, error) {
	payment, err := s.paymentRepo.FindByID(id)
	if err != nil {
		return nil, errors.ParseDBError(err, "Платеж не найден")
	}

	parsed, ok := model.ParsePaymentStatus(status)
	if !ok {
		return nil, errors.Validationf("Неизвестный статус платежа: %s", status)
	}

	payment.Status = parsed
	if parsed == model.PaymentStatusPaid {
		if payment.PaidAt == nil {
			now := time.Now()
			payment.PaidAt = &now
		}
	} else {
		payment.PaidAt = nil
	}

	if err := s.paymentRepo.Update(payment); err != nil {
		return nil, errors.ParseDBError(err, "Платеж не найден")
	}

	logger.Info("Payment status changed", map[string]interface{}{
		"payment_id": payment.ID,
		"status":     parsed,
	})
	return payment, nil
}

// Process settles a PENDING payment. Any other state is already processed.
func (s *paymentService) Process(id uint) (*model.Payment, error) {
	payment, err := s.paymentRepo.FindByID(id)
	if err != nil {
		return nil, errors.ParseDBError(err, "Платеж не найден")
	}

	if payment.Status != model.PaymentStatusPending {
		return nil, errors.Lifecycle("Платеж уже обработан")
	}

	now := time.Now()
	payment.Status = model.PaymentStatusPaid
	payment.PaidAt = &now

	if err := s.paymentRepo.Update(payment); err != nil {
		return nil, errors.ParseDBError(err, "Платеж не найден")
	}

	logger.Info("Payment processed", map[string]interface{}{
		"payment_id":     payment.ID,
		"payment_number": payment.PaymentNumber,
	})
	return payment, nil
}

func (s *paymentService) Delete(id uint, admin bool) error {
	payment, err := s.paymentRepo.FindByID(id)
	if err != nil {
		return errors.ParseDBError(err, "Платеж не найден")
	}

	if !admin && payment.Status != model.PaymentStatusPending {
		return errors.Lifecycle("Удаление невозможно. Платеж уже обработан.")
	}

	return s.paymentRepo.Delete(id)
}

func (s *paymentService) StatsByClient(clientID uint) (*PaymentStats, error) {
	total, err := s.paymentRepo.TotalAmountByClient(clientID)
	if err != nil {
		return nil, err
	}
	paid, err := s.paymentRepo.TotalAmountByClientAndStatus(clientID, model.PaymentStatusPaid)
	if err != nil {
		return nil, err
	}
	pending, err := s.paymentRepo.TotalAmountByClientAndStatus(clientID, model.PaymentStatusPending)
	if err != nil {
		return nil, err
	}

	return &PaymentStats{
		TotalAmount:   total,
		PaidAmount:    paid,
		PendingAmount: pending,
	}, nil
}

// IsOwner reports whether the user is the payment's client.
func (s *paymentService) IsOwner(id, userID uint) (bool, error) {
	payment, err := s.paymentRepo.FindByID(id)
	if err != nil {
		return false, errors.ParseDBError(err, "Платеж не найден")
	}
	return payment.ClientID == userID, nil
}
