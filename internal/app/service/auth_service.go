package service

import (
	goerrors "errors"
	"regexp"
	"strings"
	"time"

	"github.com/Maya170605/customs-backend/internal/app/model"
	"github.com/Maya170605/customs-backend/internal/app/repository"
	"github.com/Maya170605/customs-backend/internal/errors"
	"github.com/Maya170605/customs-backend/pkg/logger"
	"github.com/Maya170605/customs-backend/pkg/util"
	"gorm.io/gorm"
)

var unpPattern = regexp.MustCompile(`^\d{9}$`)

// RegisterRequest carries the public registration payload.
type RegisterRequest struct {
	Username     string `json:"username" binding:"required"`
	Password     string `json:"password"`
	Role         string `json:"role" binding:"required"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	ActivityType string `json:"activityType"`
	Unp          string `json:"unp"`
}

type AuthService interface {
	Register(req RegisterRequest) (*model.User, error)
	Login(username, password string) (*model.AuthResponse, error)
	BootstrapAdmin(username, password, email string) error
}

type authService struct {
	userRepo  repository.UserRepository
	unpRepo   repository.UnpRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	unpRepo repository.UnpRepository,
	jwtSecret string,
	tokenTTL time.Duration,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		unpRepo:   unpRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Register creates a CLIENT or DRIVER account. ADMIN is never acceptable
// from the public endpoint, and the role dictates which profile fields are
// required: a client carries a company name and a registry-backed UNP, a
// driver carries neither.
func (s *authService) Register(req RegisterRequest) (*model.User, error) {
	logger.Info("Attempting user registration", map[string]interface{}{
		"username": req.Username,
		"role":     req.Role,
	})

	role, ok := model.ParseRole(req.Role)
	if !ok || role == model.RoleAdmin {
		return nil, errors.Validation("Роль администратора недоступна для регистрации")
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, errors.Validation("Пароль обязателен")
	}

	exists, err := s.userRepo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		logger.Warn("Registration failed: username taken", map[string]interface{}{
			"username": req.Username,
		})
		return nil, errors.Conflict("Пользователь с таким логином уже существует")
	}

	user := &model.User{
		Username: req.Username,
		Role:     role,
	}
	if req.Email != "" {
		email := req.Email
		user.Email = &email
	}

	switch role {
	case model.RoleClient:
		if err := s.applyClientProfile(user, req); err != nil {
			return nil, err
		}
	case model.RoleDriver:
		if strings.TrimSpace(req.Name) != "" {
			return nil, errors.Validation("Название компании не должно указываться для водителя")
		}
		user.Name = nil
		user.ActivityType = nil
		user.UnpID = nil
	}

	hashed, err := util.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"username": req.Username,
		})
		return nil, err
	}
	user.Password = hashed

	if err := s.userRepo.Create(user); err != nil {
		return nil, errors.ParseDBError(err, "Пользователь не найден")
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
	})

	return user, nil
}

// applyClientProfile validates the company name and UNP and, when the UNP
// resolves in the registry and is unclaimed, marks the account verified.
func (s *authService) applyClientProfile(user *model.User, req RegisterRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.Validation("Название компании обязательно для клиента")
	}
	if strings.TrimSpace(req.Unp) == "" {
		return errors.Validation("УНП обязателен для клиента")
	}
	if !unpPattern.MatchString(req.Unp) {
		return errors.Validation("УНП не прошёл валидацию (должно быть 9 цифр)")
	}

	entry, err := s.unpRepo.FindByUnp(req.Unp)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Validation("УНП не найден в справочнике")
		}
		return err
	}

	claimed, err := s.userRepo.ExistsByUnp(req.Unp)
	if err != nil {
		return err
	}
	if claimed {
		return errors.Conflict("Пользователь с таким УНП уже существует")
	}

	name := req.Name
	user.Name = &name
	if req.ActivityType != "" {
		activityType := req.ActivityType
		user.ActivityType = &activityType
	}
	user.UnpID = &entry.ID
	user.Unp = entry
	user.Verified = true
	return nil
}

// Login verifies the credentials and issues a bearer token. Unknown username
// and wrong password are indistinguishable to the caller.
func (s *authService) Login(username, password string) (*model.AuthResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: unknown username", map[string]interface{}{
				"username": username,
			})
			return nil, errors.Unauthorized("Неверные учетные данные")
		}
		return nil, err
	}

	if !util.VerifyPassword(user.Password, password) {
		logger.Warn("Login failed: wrong password", map[string]interface{}{
			"username": username,
		})
		return nil, errors.Unauthorized("Неверные учетные данные")
	}

	token, err := util.GenerateToken(user.Username, s.jwtSecret, s.tokenTTL)
	if err != nil {
		logger.Error("Failed to generate token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, err
	}

	logger.Info("User logged in", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
	})

	return &model.AuthResponse{
		AccessToken:  token,
		TokenType:    "Bearer",
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		Role:         user.Role,
		Roles:        []string{user.Role.Authority()},
		Name:         user.Name,
		Unp:          user.UnpNumber(),
		ActivityType: user.ActivityType,
		Verified:     user.Verified,
	}, nil
}

// BootstrapAdmin ensures the administrator account exists with the configured
// credentials. An existing account is repaired rather than duplicated, so the
// step is safe to run on every start.
func (s *authService) BootstrapAdmin(username, password, email string) error {
	hashed, err := util.HashPassword(password)
	if err != nil {
		return err
	}

	existing, err := s.userRepo.FindByUsername(username)
	if err != nil && !goerrors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if existing != nil {
		existing.Password = hashed
		existing.Role = model.RoleAdmin
		existing.Verified = true
		if err := s.userRepo.Update(existing); err != nil {
			return err
		}
		logger.Info("Administrator account repaired", map[string]interface{}{
			"username": username,
		})
		return nil
	}

	admin := &model.User{
		Username: username,
		Password: hashed,
		Role:     model.RoleAdmin,
		Verified: true,
	}
	if email != "" {
		admin.Email = &email
	}
	if err := s.userRepo.Create(admin); err != nil {
		return err
	}

	logger.Info("Administrator account created", map[string]interface{}{
		"username": username,
	})
	return nil
}
