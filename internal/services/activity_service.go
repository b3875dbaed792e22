package services

import (
	"report_manager/internal/models"
	"report_manager/internal/repository"
)

const defaultFeedLimit = 50

type ActivityService interface {
	GetUserActivity(userID uint, limit int) ([]models.ActivityLog, error)
	GetRecentActivity(limit int) ([]models.ActivityLog, error)
}

type activityService struct {
	activityRepo repository.ActivityRepository
}

func NewActivityService(activityRepo repository.ActivityRepository) ActivityService {
	return &activityService{activityRepo: activityRepo}
}

func (s *activityService) GetUserActivity(userID uint, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	return s.activityRepo.ListByUser(userID, limit)
}

func (s *activityService) GetRecentActivity(limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	return s.activityRepo.ListRecent(limit)
}
