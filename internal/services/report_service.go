package services

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"report_manager/internal/apperrors"
	"report_manager/internal/cache"
	"report_manager/internal/models"
	"report_manager/internal/reports"
	"report_manager/internal/repository"
)

// ReportCache is the slice of the cache client the report service needs.
type ReportCache interface {
	GetCollection(key string) (reports.Collection, bool)
	SetCollection(key string, col reports.Collection)
	InvalidateReports()
}

type ReportService interface {
	FetchReportsForUser(userID uint) (reports.Collection, error)
	FetchReportsForAdmin(userIDs []uint) (reports.Collection, error)
	SaveReport(userID uint, date string, reportIndex *int, body *models.DailyReport) (*models.DailyReport, error)
	GetReportByID(id uint) (*models.DailyReport, error)
	DeleteReportByID(id uint) error
	DeleteReport(userID uint, date string, reportIndex int) error
	SubmitFeedback(userID uint, date string, reportIndex *int, adminFeedback *string, adminReviewed bool) (*models.DailyReport, error)
	GetStats(userID uint) (reports.Stats, error)
}

type reportService struct {
	reportRepo   repository.ReportRepository
	activityRepo repository.ActivityRepository
	cache        ReportCache
}

func NewReportService(reportRepo repository.ReportRepository, activityRepo repository.ActivityRepository, reportCache ReportCache) ReportService {
	return &reportService{
		reportRepo:   reportRepo,
		activityRepo: activityRepo,
		cache:        reportCache,
	}
}

// FetchReportsForUser returns the user's nested collection. A user with
// no reports gets an empty collection, not an error.
func (s *reportService) FetchReportsForUser(userID uint) (reports.Collection, error) {
	key := cache.UserKey(userID)
	if col, ok := s.cache.GetCollection(key); ok {
		return col, nil
	}

	col, err := s.fetchUser(userID)
	if err != nil {
		return nil, err
	}
	s.cache.SetCollection(key, col)
	return col, nil
}

// FetchReportsForAdmin merges every user's collection into one. A user
// whose fetch fails is skipped; the call only errors when nobody could
// be fetched at all.
func (s *reportService) FetchReportsForAdmin(userIDs []uint) (reports.Collection, error) {
	key := cache.AdminKey(userIDs)
	if col, ok := s.cache.GetCollection(key); ok {
		return col, nil
	}

	merged := reports.Collection{}
	failed := 0
	for _, userID := range userIDs {
		col, err := s.fetchUser(userID)
		if err != nil {
			log.Printf("reports: fetch for user %d failed: %v", userID, err)
			failed++
			continue
		}
		merged.Merge(col)
	}
	if len(userIDs) > 0 && failed == len(userIDs) {
		return nil, fmt.Errorf("%w: no user could be fetched", apperrors.ErrNetwork)
	}

	s.cache.SetCollection(key, merged)
	return merged, nil
}

func (s *reportService) fetchUser(userID uint) (reports.Collection, error) {
	rows, err := s.reportRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list reports: %v", apperrors.ErrNetwork, err)
	}
	return reports.Group(rows), nil
}

// SaveReport upserts one report. With an explicit index the matching row
// is updated (or created at exactly that index, so retries cannot
// duplicate); without one the next free index is allocated. Every
// successful save appends an activity-log entry.
func (s *reportService) SaveReport(userID uint, date string, reportIndex *int, body *models.DailyReport) (*models.DailyReport, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: missing user id", apperrors.ErrValidation)
	}
	if err := reports.ValidateDate(date); err != nil {
		return nil, err
	}
	if body == nil {
		return nil, fmt.Errorf("%w: missing report body", apperrors.ErrValidation)
	}

	var saved *models.DailyReport
	action := models.ActionReportCreate

	if reportIndex != nil {
		existing, err := s.reportRepo.GetByUserDateIndex(userID, date, *reportIndex)
		switch {
		case err == nil:
			applyContentFields(existing, body)
			if err := s.reportRepo.Update(existing); err != nil {
				return nil, fmt.Errorf("%w: failed to update report: %v", apperrors.ErrNetwork, err)
			}
			saved = existing
			action = models.ActionReportUpdate
		case errors.Is(err, gorm.ErrRecordNotFound):
			saved, err = s.createReport(userID, date, *reportIndex, body)
			if err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: failed to look up report: %v", apperrors.ErrNetwork, err)
		}
	} else {
		next, err := s.reportRepo.NextIndex(userID, date)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to allocate report index: %v", apperrors.ErrNetwork, err)
		}
		saved, err = s.createReport(userID, date, next, body)
		if err != nil {
			return nil, err
		}
	}

	// Writers must not race ahead of a stale cache entry: drop cached
	// collections before this request returns.
	s.cache.InvalidateReports()

	s.appendActivity(userID, date, action)
	return saved, nil
}

func (s *reportService) createReport(userID uint, date string, index int, body *models.DailyReport) (*models.DailyReport, error) {
	row := &models.DailyReport{
		UserID:      userID,
		ReportDate:  date,
		ReportIndex: index,
	}
	applyContentFields(row, body)
	if row.Status == "" {
		row.Status = string(models.ReportCompleted)
	}
	row.AdminFeedback = nil
	row.AdminReviewed = false

	if err := s.reportRepo.Create(row); err != nil {
		return nil, fmt.Errorf("%w: failed to create report: %v", apperrors.ErrNetwork, err)
	}
	return row, nil
}

// applyContentFields copies the owner-writable fields only. Review
// fields survive an owner's edit untouched.
func applyContentFields(dst, src *models.DailyReport) {
	dst.Completed = src.Completed
	dst.InProgress = src.InProgress
	dst.Issues = src.Issues
	dst.Tomorrow = src.Tomorrow
	dst.Project = src.Project
	dst.ProjectID = src.ProjectID
	dst.TaskIDs = src.TaskIDs
	dst.UserFeedback = src.UserFeedback
	if src.Status != "" {
		dst.Status = src.Status
	}
}

func (s *reportService) appendActivity(userID uint, date string, action string) {
	verb := "作成"
	if action == models.ActionReportUpdate {
		verb = "更新"
	}
	entry := &models.ActivityLog{
		UserID:      userID,
		Action:      action,
		Description: fmt.Sprintf("%sの日報を%sしました", reports.FormatDateJa(date), verb),
	}
	if err := s.activityRepo.Create(entry); err != nil {
		log.Printf("reports: failed to append activity for user %d: %v", userID, err)
	}
}

func (s *reportService) GetReportByID(id uint) (*models.DailyReport, error) {
	row, err := s.reportRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: report %d", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: failed to look up report: %v", apperrors.ErrNetwork, err)
	}
	return row, nil
}

func (s *reportService) DeleteReportByID(id uint) error {
	deleted, err := s.reportRepo.DeleteByID(id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete report: %v", apperrors.ErrNetwork, err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: report %d", apperrors.ErrNotFound, id)
	}
	s.cache.InvalidateReports()
	return nil
}

func (s *reportService) DeleteReport(userID uint, date string, reportIndex int) error {
	deleted, err := s.reportRepo.DeleteByUserDateIndex(userID, date, reportIndex)
	if err != nil {
		return fmt.Errorf("%w: failed to delete report: %v", apperrors.ErrNetwork, err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: report %d/%s#%d", apperrors.ErrNotFound, userID, date, reportIndex)
	}
	s.cache.InvalidateReports()
	return nil
}

// SubmitFeedback writes the review fields of a single report. A nil
// index targets the first report of the day.
func (s *reportService) SubmitFeedback(userID uint, date string, reportIndex *int, adminFeedback *string, adminReviewed bool) (*models.DailyReport, error) {
	if err := reports.ValidateDate(date); err != nil {
		return nil, err
	}
	index := 0
	if reportIndex != nil {
		index = *reportIndex
	}

	row, err := s.reportRepo.GetByUserDateIndex(userID, date, index)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: report %d/%s#%d", apperrors.ErrNotFound, userID, date, index)
		}
		return nil, fmt.Errorf("%w: failed to look up report: %v", apperrors.ErrNetwork, err)
	}

	row.AdminFeedback = adminFeedback
	row.AdminReviewed = adminReviewed
	if err := s.reportRepo.Update(row); err != nil {
		return nil, fmt.Errorf("%w: failed to save feedback: %v", apperrors.ErrNetwork, err)
	}
	s.cache.InvalidateReports()
	return row, nil
}

func (s *reportService) GetStats(userID uint) (reports.Stats, error) {
	col, err := s.FetchReportsForUser(userID)
	if err != nil {
		return reports.Stats{}, err
	}
	return reports.ComputeStats(col[userID]), nil
}
