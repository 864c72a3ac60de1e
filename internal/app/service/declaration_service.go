package service

import (
	"time"

	"github.com/Maya170605/customs-backend/internal/app/model"
	"github.com/Maya170605/customs-backend/internal/app/repository"
	"github.com/Maya170605/customs-backend/internal/errors"
	"github.com/Maya170605/customs-backend/pkg/logger"
)

// DeclarationRequest carries the mutable declaration fields for create and
// update. The number, status and timestamps are managed by the service.
type DeclarationRequest struct {
	ClientID             uint    `json:"clientId"`
	DeclarationType      string  `json:"declarationType"`
	TnvedCode            string  `json:"tnvedCode"`
	ProductDescription   string  `json:"productDescription"`
	ProductValue         float64 `json:"productValue"`
	NetWeight            float64 `json:"netWeight"`
	Quantity             int     `json:"quantity"`
	CountryOfOrigin      string  `json:"countryOfOrigin"`
	CountryOfDestination string  `json:"countryOfDestination"`
	CustomsOffice        string  `json:"customsOffice"`
}

// DeclarationStats is the per-client aggregate payload.
type DeclarationStats struct {
	TotalDeclarations    int64 `json:"totalDeclarations"`
	PendingDeclarations  int64 `json:"pendingDeclarations"`
	ApprovedDeclarations int64 `json:"approvedDeclarations"`
}

type DeclarationService interface {
	Create(req DeclarationRequest) (*model.Declaration, error)
	GetByID(id uint) (*model.Declaration, error)
	GetAll() ([]model.Declaration, error)
	GetByClientID(clientID uint) ([]model.Declaration, error)
	GetByStatus(status string) ([]model.Declaration, error)
	Update(id uint, req DeclarationRequest, admin bool) (*model.Declaration, error)
	UpdateStatus(id uint, status string) (*model.Declaration, error)
	Delete(id uint, admin bool) error
	StatsByClient(clientID uint) (*DeclarationStats, error)
	IsOwner(id, userID uint) (bool, error)
}

type declarationService struct {
	declarationRepo repository.DeclarationRepository
	userRepo        repository.UserRepository
}

func NewDeclarationService(
	declarationRepo repository.DeclarationRepository,
	userRepo repository.UserRepository,
) DeclarationService {
	return &declarationService{
		declarationRepo: declarationRepo,
		userRepo:        userRepo,
	}
}

// Create registers a new declaration as PENDING with a generated number and
// the submission timestamp.
func (s *declarationService) Create(req DeclarationRequest) (*model.Declaration, error) {
	if req.ClientID == 0 {
		return nil, errors.Validation("ID клиента обязателен")
	}
	if req.ProductValue < 0 {
		return nil, errors.Validation("Стоимость товара не может быть отрицательной")
	}
	if _, err := s.userRepo.FindByID(req.ClientID); err != nil {
		return nil, errors.ParseDBError(err, "Клиент не найден")
	}

	number, err := nextDocumentNumber("TD", s.declarationRepo.Count, s.declarationRepo.ExistsByNumber)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	declaration := &model.Declaration{
		DeclarationNumber:    number,
		ClientID:             req.ClientID,
		DeclarationType:      req.DeclarationType,
		TnvedCode:            req.TnvedCode,
		ProductDescription:   req.ProductDescription,
		ProductValue:         req.ProductValue,
		NetWeight:            req.NetWeight,
		Quantity:             req.Quantity,
		CountryOfOrigin:      req.CountryOfOrigin,
		CountryOfDestination: req.CountryOfDestination,
		CustomsOffice:        req.CustomsOffice,
		Status:               model.DeclarationStatusPending,
		SubmittedAt:          &now,
	}

	if err := s.declarationRepo.Create(declaration); err != nil {
		return nil, errors.ParseDBError(err, "Декларация не найдена")
	}

	logger.Info("Declaration created", map[string]interface{}{
		"declaration_id":     declaration.ID,
		"declaration_number": declaration.DeclarationNumber,
		"client_id":          declaration.ClientID,
	})

	return s.declarationRepo.FindByID(declaration.ID)
}

func (s *declarationService) GetByID(id uint) (*model.Declaration, error) {
	declaration, err := s.declarationRepo.FindByID(id)
	if err != nil {
		return nil, errors.ParseDBError(err, "Декларация не найдена")
	}
	return declaration, nil
}

func (s *declarationService) GetAll() ([]model.Declaration, error) {
	return s.declarationRepo.FindAll()
}

func (s *declarationService) GetByClientID(clientID uint) ([]model.Declaration, error) {
	return s.declarationRepo.FindByClientID(clientID)
}

func (s *declarationService) GetByStatus(status string) ([]model.Declaration, error) {
	return s.declarationRepo.FindByStatus(status)
}

// Update rewrites the mutable fields. Non-administrators may only touch a
// declaration that is still PENDING.
func (s *declarationService) Update(id uint, req DeclarationRequest, admin bool) (*model.Declaration, error) {
	declaration, err := s.declarationRepo.FindByID(id)
	if err != nil {
		return nil, errors.ParseDBError(err, "Декларация не найдена")
	}

	if !admin && declaration.Status != model.DeclarationStatusPending {
		return nil, errors.Lifecycle("Редактирование невозможно. Декларация уже обработана.")
	}
	if req.ProductValue < 0 {
		return nil, errors.Validation("Стоимость товара не может быть отрицательной")
	}

	declaration.DeclarationType = req.DeclarationType
	declaration.TnvedCode = req.TnvedCode
	declaration.ProductDescription = req.ProductDescription
	declaration.ProductValue = req.ProductValue
	declaration.NetWeight = req.NetWeight
	declaration.Quantity = req.Quantity
	declaration.CountryOfOrigin = req.CountryOfOrigin
	declaration.CountryOfDestination = req.CountryOfDestination
	declaration.CustomsOffice = req.CustomsOffice

	if err := s.declarationRepo.Update(declaration); err != nil {
		return nil, errors.ParseDBError(err, "Декларация не найдена")
	}
	return declaration, nil
}

// UpdateStatus accepts any status string; APPROVED and REJECTED additionally
// record the review timestamp.
func (s *declarationService) UpdateStatus(id uint, status string) (*model.Declaration, error) {
	declaration, err := s.declarationRepo.FindByID(id)
	if err != nil {
		return nil, errors.ParseDBError(err, "Декларация не найдена")
	}

	declaration.Status = status
	if status == model.DeclarationStatusApproved || status == model.DeclarationStatusRejected {
		now := time.Now()
		declaration.ReviewedAt = &now
	}

	if err := s.declarationRepo.Update(declaration); err != nil {
		return nil, errors.ParseDBError(err, "Декларация не найдена")
	}

	logger.Info("Declaration status changed", map[string]interface{}{
		"declaration_id": declaration.ID,
		"status":         status,
	})
	return declaration, nil
}

func (s *declarationService) Delete(id uint, admin bool) error {
	declaration, err := s.declarationRepo.FindByID(id)
	if err != nil {
		return errors.ParseDBError(err, "Декларация не найдена")
	}

	if !admin && declaration.Status != model.DeclarationStatusPending {
		return errors.Lifecycle("Удаление невозможно. Декларация уже обработана.")
	}

	return s.declarationRepo.Delete(id)
}

func (s *declarationService) StatsByClient(clientID uint) (*DeclarationStats, error) {
	total, err := s.declarationRepo.CountByClient(clientID)
	if err != nil {
		return nil, err
	}
	pending, err := s.declarationRepo.CountByClientAndStatus(clientID, model.DeclarationStatusPending)
	if err != nil {
		return nil, err
	}
	approved, err := s.declarationRepo.CountByClientAndStatus(clientID, model.DeclarationStatusApproved)
	if err != nil {
		return nil, err
	}

	return &DeclarationStats{
		TotalDeclarations:    total,
		PendingDeclarations:  pending,
		ApprovedDeclarations: approved,
	}, nil
}

// IsOwner reports whether the user is the declaration's client. A missing
// declaration surfaces as not-found so the caller can 404 before any 403.
func (s *declarationService) IsOwner(id, userID uint) (bool, error) {
	declaration, err := s.declarationRepo.FindByID(id)
	if err != nil {
		return false, errors.ParseDBError(err, "Декларация не найдена")
	}
	return declaration.ClientID == userID, nil
}
