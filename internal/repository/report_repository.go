package repository

import (
	"report_manager/internal/models"

	"gorm.io/gorm"
)

type ReportRepository interface {
	ListByUser(userID uint) ([]models.DailyReport, error)
	GetByID(id uint) (*models.DailyReport, error)
	GetByUserDateIndex(userID uint, date string, index int) (*models.DailyReport, error)
	NextIndex(userID uint, date string) (int, error)
	Create(report *models.DailyReport) error
	Update(report *models.DailyReport) error
	DeleteByID(id uint) (int64, error)
	DeleteByUserDateIndex(userID uint, date string, index int) (int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) ListByUser(userID uint) ([]models.DailyReport, error) {
	var rows []models.DailyReport
	err := r.db.Where("user_id = ?", userID).
		Order("report_date asc, report_index asc").
		Find(&rows).Error
	return rows, err
}

func (r *reportRepository) GetByID(id uint) (*models.DailyReport, error) {
	var row models.DailyReport
	err := r.db.First(&row, id).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *reportRepository) GetByUserDateIndex(userID uint, date string, index int) (*models.DailyReport, error) {
	var row models.DailyReport
	err := r.db.Where("user_id = ? AND report_date = ? AND report_index = ?", userID, date, index).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// NextIndex returns max(existing indices)+1 for the user and date, or 0
// when the date has no reports yet.
func (r *reportRepository) NextIndex(userID uint, date string) (int, error) {
	var maxIndex int
	err := r.db.Model(&models.DailyReport{}).
		Where("user_id = ? AND report_date = ?", userID, date).
		Select("COALESCE(MAX(report_index), -1)").
		Scan(&maxIndex).Error
	if err != nil {
		return 0, err
	}
	return maxIndex + 1, nil
}

func (r *reportRepository) Create(report *models.DailyReport) error {
	return r.db.Create(report).Error
}

func (r *reportRepository) Update(report *models.DailyReport) error {
	return r.db.Save(report).Error
}

func (r *reportRepository) DeleteByID(id uint) (int64, error) {
	res := r.db.Delete(&models.DailyReport{}, id)
	return res.RowsAffected, res.Error
}

func (r *reportRepository) DeleteByUserDateIndex(userID uint, date string, index int) (int64, error) {
	res := r.db.Where("user_id = ? AND report_date = ? AND report_index = ?", userID, date, index).
		Delete(&models.DailyReport{})
	return res.RowsAffected, res.Error
}
