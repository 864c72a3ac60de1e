package repository

import (
	"github.com/Maya170605/customs-backend/internal/app/model"
	"github.com/Maya170605/customs-backend/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindAll() ([]model.User, error)
	FindPage(offset, limit int) ([]model.User, int64, error)
	FindByRole(role model.Role) ([]model.User, error)
	ExistsByUsername(username string) (bool, error)
	ExistsByEmail(email string) (bool, error)
	ExistsByUnp(unp string) (bool, error)
	Update(user *model.User) error
	DeleteCascade(id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"username": user.Username,
		})
		return err
	}
	return nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Unp").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Unp").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll() ([]model.User, error) {
	var users []model.User
	if err := r.db.Preload("Unp").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindPage(offset, limit int) ([]model.User, int64, error) {
	var total int64
	if err := r.db.Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := r.db.Preload("Unp").Order("id").Offset(offset).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) FindByRole(role model.Role) ([]model.User, error) {
	var users []model.User
	if err := r.db.Preload("Unp").Where("role = ?", role).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) ExistsByUnp(unp string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).
		Joins("JOIN unps ON unps.id = users.unp_id").
		Where("unps.unp = ?", unp).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) Update(user *model.User) error {
	if err := r.db.Save(user).Error; err != nil {
		logger.Error("Failed to update user in database", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}
	return nil
}

// DeleteCascade removes a user together with every record they own, in one
// transaction: payments tied to the user's declarations first, then their own
// payments, declarations, vehicles, activities, and finally the user row.
func (r *userRepository) DeleteCascade(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM payments WHERE declaration_id IN (SELECT id FROM declarations WHERE client_id = ?)", id,
		).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM payments WHERE client_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM declarations WHERE client_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM vehicles WHERE client_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM activities WHERE user_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, id).Error
	})
}
