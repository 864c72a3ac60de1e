package service

import (
	goerrors "errors"
	"strings"

	"github.com/Maya170605/customs-backend/internal/app/model"
	"github.com/Maya170605/customs-backend/internal/app/repository"
	"github.com/Maya170605/customs-backend/internal/errors"
	"github.com/Maya170605/customs-backend/pkg/logger"
	"github.com/Maya170605/customs-backend/pkg/pagination"
	"github.com/Maya170605/customs-backend/pkg/util"
	"gorm.io/gorm"
)

// UpdateUserRequest is a partial patch; empty fields are left untouched.
// A non-empty password is re-hashed before persistence.
type UpdateUserRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	ActivityType string `json:"activityType"`
}

type UserService interface {
	GetByID(id uint) (*model.User, error)
	GetByUsername(username string) (*model.User, error)
	GetAll() ([]model.User, error)
	GetPage(params pagination.Params) (pagination.Page, error)
	GetByRole(role string) ([]model.User, error)
	Update(id uint, req UpdateUserRequest) (*model.User, error)
	Delete(id uint) error
	ExistsByUsername(username string) (bool, error)
	ExistsByEmail(email string) (bool, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, errors.ParseDBError(err, "Пользователь не найден")
	}
	return user, nil
}

func (s *userService) GetByUsername(username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, errors.ParseDBError(err, "Пользователь не найден")
	}
	return user, nil
}

func (s *userService) GetAll() ([]model.User, error) {
	return s.userRepo.FindAll()
}

func (s *userService) GetPage(params pagination.Params) (pagination.Page, error) {
	users, total, err := s.userRepo.FindPage(params.Offset, params.Size)
	if err != nil {
		return pagination.Page{}, err
	}

	dtos := make([]model.UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, users[i].ToDTO())
	}
	return pagination.NewPage(dtos, params, total), nil
}

func (s *userService) GetByRole(role string) ([]model.User, error) {
	parsed, ok := model.ParseRole(strings.ToUpper(role))
	if !ok {
		return nil, errors.Validationf("Неизвестная роль: %s", role)
	}
	return s.userRepo.FindByRole(parsed)
}

// Update applies a partial patch. A username change re-checks global
// uniqueness; the role itself is never changed through this path.
func (s *userService) Update(id uint, req UpdateUserRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, errors.ParseDBError(err, "Пользователь не найден")
	}

	if req.Username != "" && req.Username != user.Username {
		taken, err := s.userRepo.ExistsByUsername(req.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errors.Conflict("Пользователь с таким логином уже существует")
		}
		user.Username = req.Username
	}

	if strings.TrimSpace(req.Password) != "" {
		hashed, err := util.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if req.Email != "" {
		email := req.Email
		user.Email = &email
	}
	if user.Role == model.RoleClient {
		if req.Name != "" {
			name := req.Name
			user.Name = &name
		}
		if req.ActivityType != "" {
			activityType := req.ActivityType
			user.ActivityType = &activityType
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, errors.ParseDBError(err, "Пользователь не найден")
	}

	logger.Info("User updated", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, nil
}

// Delete removes the user and everything the user owns in one transaction.
func (s *userService) Delete(id uint) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.NotFound("Пользователь не найден")
		}
		return err
	}

	if err := s.userRepo.DeleteCascade(id); err != nil {
		logger.Error("Failed to delete user", err, map[string]interface{}{
			"user_id": id,
		})
		return errors.Validation("Не удалось удалить пользователя. Возможно, у него есть связанные декларации или платежи.")
	}

	logger.Info("User deleted", map[string]interface{}{
		"user_id": id,
	})
	return nil
}

func (s *userService) ExistsByUsername(username string) (bool, error) {
	return s.userRepo.ExistsByUsername(username)
}

func (s *userService) ExistsByEmail(email string) (bool, error) {
	return s.userRepo.ExistsByEmail(email)
}
