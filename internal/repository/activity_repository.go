package repository

import (
	"report_manager/internal/models"

	"gorm.io/gorm"
)

type ActivityRepository interface {
	Create(entry *models.ActivityLog) error
	ListByUser(userID uint, limit int) ([]models.ActivityLog, error)
	ListRecent(limit int) ([]models.ActivityLog, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(entry *models.ActivityLog) error {
	return r.db.Create(entry).Error
}

func (r *activityRepository) ListByUser(userID uint, limit int) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	err := r.db.Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *activityRepository) ListRecent(limit int) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	err := r.db.Order("created_at desc").Limit(limit).Find(&entries).Error
	return entries, err
}
