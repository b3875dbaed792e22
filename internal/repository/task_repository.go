package repository

import (
	"time"

	"report_manager/internal/models"

	"gorm.io/gorm"
)

type TaskRepository interface {
	Create(task *models.Task) error
	GetByID(id uint) (*models.Task, error)
	ListByProject(projectID uint) ([]models.Task, error)
	ListByAssignee(userID uint) ([]models.Task, error)
	Update(task *models.Task) error
	Delete(id uint) error
	MarkOverdue(now time.Time) (int64, error)
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

func (r *taskRepository) GetByID(id uint) (*models.Task, error) {
	var task models.Task
	err := r.db.First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListByProject(projectID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("project_id = ?", projectID).Order("created_at asc").Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) ListByAssignee(userID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("assigned_to = ?", userID).Order("due_date asc").Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

func (r *taskRepository) Delete(id uint) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// MarkOverdue flips past-due open tasks to overdue and returns how many
// rows changed.
func (r *taskRepository) MarkOverdue(now time.Time) (int64, error) {
	res := r.db.Model(&models.Task{}).
		Where("due_date IS NOT NULL AND due_date < ? AND status IN ?", now,
			[]string{string(models.TaskPending), string(models.TaskInProgress)}).
		Update("status", string(models.TaskOverdue))
	return res.RowsAffected, res.Error
}
