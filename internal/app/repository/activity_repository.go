package repository

import (
	"github.com/Maya170605/customs-backend/internal/app/model"
	"gorm.io/gorm"
)

type ActivityRepository interface {
	Create(activity *model.Activity) error
	FindByID(id uint) (*model.Activity, error)
	FindAll() ([]model.Activity, error)
	FindByUserID(userID uint) ([]model.Activity, error)
	FindRecentByUserID(userID uint, limit int) ([]model.Activity, error)
	FindPageByUserID(userID uint, offset, limit int) ([]model.Activity, int64, error)
	Update(activity *model.Activity) error
	Delete(id uint) error
	DeleteByUserID(userID uint) error
	CountByUserID(userID uint) (int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(activity *model.Activity) error {
	return r.db.Create(activity).Error
}

func (r *activityRepository) FindByID(id uint) (*model.Activity, error) {
	var activity model.Activity
	err := r.db.Preload("User").First(&activity, id).Error
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepository) FindAll() ([]model.Activity, error) {
	var activities []model.Activity
	err := r.db.Preload("User").Order("activity_date DESC").Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *activityRepository) FindByUserID(userID uint) ([]model.Activity, error) {
	var activities []model.Activity
	err := r.db.Preload("User").
		Where("user_id = ?", userID).
		Order("activity_date DESC").
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *activityRepository) FindRecentByUserID(userID uint, limit int) ([]model.Activity, error) {
	var activities []model.Activity
	err := r.db.Preload("User").
		Where("user_id = ?", userID).
		Order("activity_date DESC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *activityRepository) FindPageByUserID(userID uint, offset, limit int) ([]model.Activity, int64, error) {
	var total int64
	if err := r.db.Model(&model.Activity{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var activities []model.Activity
	err := r.db.Preload("User").
		Where("user_id = ?", userID).
		Order("activity_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, 0, err
	}
	return activities, total, nil
}

func (r *activityRepository) Update(activity *model.Activity) error {
	return r.db.Save(activity).Error
}

func (r *activityRepository) Delete(id uint) error {
	return r.db.Delete(&model.Activity{}, id).Error
}

func (r *activityRepository) DeleteByUserID(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.Activity{}).Error
}

func (r *activityRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Activity{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
