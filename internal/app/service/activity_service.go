package service

import (
	"strings"
	"time"

	"github.com/Maya170605/customs-backend/internal/app/model"
	"github.com/Maya170605/customs-backend/internal/app/repository"
	"github.com/Maya170605/customs-backend/internal/errors"
	"github.com/Maya170605/customs-backend/pkg/pagination"
)

const defaultRecentLimit = 10

// ActivityRequest carries the mutable activity fields.
type ActivityRequest struct {
	UserID       uint       `json:"userId"`
	Description  string     `json:"description"`
	ActivityDate *time.Time `json:"activityDate"`
}

// ActivityStats is the per-user aggregate payload.
type ActivityStats struct {
	TotalActivities int64 `json:"totalActivities"`
}

type ActivityService interface {
	Create(req ActivityRequest) (*model.Activity, error)
	CreateForUsername(username, description string, date *time.Time) (*model.Activity, error)
	GetByID(id uint) (*model.Activity, error)
	GetAll() ([]model.Activity, error)
	GetByUserID(userID uint) ([]model.Activity, error)
	GetRecentByUserID(userID uint, limit int) ([]model.Activity, error)
	GetPageByUserID(userID uint, params pagination.Params) (pagination.Page, error)
	Update(id uint, description string, date *time.Time) (*model.Activity, error)
	Delete(id uint) error
	DeleteByUserID(userID uint) error
	StatsByUser(userID uint) (*ActivityStats, error)
}

type activityService struct {
	activityRepo repository.ActivityRepository
	userRepo     repository.UserRepository
}

func NewActivityService(
	activityRepo repository.ActivityRepository,
	userRepo repository.UserRepository,
) ActivityService {
	return &activityService{
		activityRepo: activityRepo,
		userRepo:     userRepo,
	}
}

func (s *activityService) Create(req ActivityRequest) (*model.Activity, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, errors.Validation("Описание активности обязательно")
	}
	if _, err := s.userRepo.FindByID(req.UserID); err != nil {
		return nil, errors.ParseDBError(err, "Пользователь не найден")
	}

	date := time.Now()
	if req.ActivityDate != nil {
		date = *req.ActivityDate
	}

	activity := &model.Activity{
		UserID:       req.UserID,
		Description:  req.Description,
		ActivityDate: date,
	}
	if err := s.activityRepo.Create(activity); err != nil {
		return nil, err
	}
	return s.activityRepo.FindByID(activity.ID)
}

// CreateForUsername resolves the user by name before recording the entry.
func (s *activityService) CreateForUsername(username, description string, date *time.Time) (*model.Activity, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, errors.ParseDBError(err, "Пользователь не найден")
	}
	return s.Create(ActivityRequest{
		UserID:       user.ID,
		Description:  description,
		ActivityDate: date,
	})
}

func (s *activityService) GetByID(id uint) (*model.Activity, error) {
	activity, err := s.activityRepo.FindByID(id)
	if err != nil {
		return nil, errors.ParseDBError(err, "Активность не найдена")
	}
	return activity, nil
}

func (s *activityService) GetAll() ([]model.Activity, error) {
	return s.activityRepo.FindAll()
}

func (s *activityService) GetByUserID(userID uint) ([]model.Activity, error) {
	return s.activityRepo.FindByUserID(userID)
}

func (s *activityService) GetRecentByUserID(userID uint, limit int) ([]model.Activity, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return s.activityRepo.FindRecentByUserID(userID, limit)
}

func (s *activityService) GetPageByUserID(userID uint, params pagination.Params) (pagination.Page, error) {
	activities, total, err := s.activityRepo.FindPageByUserID(userID, params.Offset, params.Size)
	if err != nil {
		return pagination.Page{}, err
	}

	dtos := make([]model.ActivityDTO, 0, len(activities))
	for i := range activities {
		dtos = append(dtos, activities[i].ToDTO())
	}
	return pagination.NewPage(dtos, params, total), nil
}

// Update changes only the description and date.
func (s *activityService) Update(id uint, description string, date *time.Time) (*model.Activity, error) {
	activity, err := s.activityRepo.FindByID(id)
	if err != nil {
		return nil, errors.ParseDBError(err, "Активность не найдена")
	}

	if strings.TrimSpace(description) != "" {
		activity.Description = description
	}
	if date != nil {
		activity.ActivityDate = *date
	}

	if err := s.activityRepo.Update(activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *activityService) Delete(id uint) error {
	if _, err := s.activityRepo.FindByID(id); err != nil {
		return errors.ParseDBError(err, "Активность не найдена")
	}
	return s.activityRepo.Delete(id)
}

func (s *activityService) DeleteByUserID(userID uint) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return errors.ParseDBError(err, "Пользователь не найден")
	}
	return s.activityRepo.DeleteByUserID(userID)
}

func (s *activityService) StatsByUser(userID uint) (*ActivityStats, error) {
	count, err := s.activityRepo.CountByUserID(userID)
	if err != nil {
		return nil, err
	}
	return &ActivityStats{TotalActivities: count}, nil
}
