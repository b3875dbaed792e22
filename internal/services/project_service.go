package services

import (
	"time"

	"report_manager/internal/models"
	"report_manager/internal/repository"
)

// ProjectSummary is an immutable snapshot of one project's task counts,
// recomputed on demand rather than kept in a shared mutable aggregate.
type ProjectSummary struct {
	ProjectID      uint      `json:"project_id"`
	Name           string    `json:"name"`
	Status         string    `json:"status"`
	TaskTotal      int       `json:"task_total"`
	TaskCompleted  int       `json:"task_completed"`
	TaskInProgress int       `json:"task_in_progress"`
	TaskPending    int       `json:"task_pending"`
	TaskOverdue    int       `json:"task_overdue"`
	GeneratedAt    time.Time `json:"generated_at"`
}

type ProjectService interface {
	CreateProject(project *models.Project) error
	GetProjectByID(id uint) (*models.Project, error)
	GetAllProjects() ([]models.Project, error)
	UpdateProject(project *models.Project) error
	DeleteProject(id uint) error

	CreateTask(task *models.Task) error
	GetTaskByID(id uint) (*models.Task, error)
	GetTasksByProject(projectID uint) ([]models.Task, error)
	GetTasksByAssignee(userID uint) ([]models.Task, error)
	UpdateTask(task *models.Task) error
	DeleteTask(id uint) error
	MarkOverdueTasks() (int64, error)

	BuildSummary(projectID uint) (*ProjectSummary, error)
	BuildAllSummaries() ([]ProjectSummary, error)
}

type projectService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
}

func NewProjectService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository) ProjectService {
	return &projectService{projectRepo: projectRepo, taskRepo: taskRepo}
}

func (s *projectService) CreateProject(project *models.Project) error {
	return s.projectRepo.Create(project)
}

func (s *projectService) GetProjectByID(id uint) (*models.Project, error) {
	return s.projectRepo.GetByID(id)
}

func (s *projectService) GetAllProjects() ([]models.Project, error) {
	return s.projectRepo.GetAll()
}

func (s *projectService) UpdateProject(project *models.Project) error {
	return s.projectRepo.Update(project)
}

func (s *projectService) DeleteProject(id uint) error {
	return s.projectRepo.Delete(id)
}

func (s *projectService) CreateTask(task *models.Task) error {
	return s.taskRepo.Create(task)
}

func (s *projectService) GetTaskByID(id uint) (*models.Task, error) {
	return s.taskRepo.GetByID(id)
}

func (s *projectService) GetTasksByProject(projectID uint) ([]models.Task, error) {
	return s.taskRepo.ListByProject(projectID)
}

func (s *projectService) GetTasksByAssignee(userID uint) ([]models.Task, error) {
	return s.taskRepo.ListByAssignee(userID)
}

func (s *projectService) UpdateTask(task *models.Task) error {
	if task.Status == string(models.TaskCompleted) && task.CompletedAt == nil {
		now := time.Now()
		task.CompletedAt = &now
	}
	return s.taskRepo.Update(task)
}

func (s *projectService) DeleteTask(id uint) error {
	return s.taskRepo.Delete(id)
}

func (s *projectService) MarkOverdueTasks() (int64, error) {
	return s.taskRepo.MarkOverdue(time.Now())
}

func (s *projectService) BuildSummary(projectID uint) (*ProjectSummary, error) {
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}

	counts, err := s.projectRepo.CountTasksByStatus(projectID)
	if err != nil {
		return nil, err
	}

	summary := &ProjectSummary{
		ProjectID:      project.ID,
		Name:           project.Name,
		Status:         project.Status,
		TaskCompleted:  counts[string(models.TaskCompleted)],
		TaskInProgress: counts[string(models.TaskInProgress)],
		TaskPending:    counts[string(models.TaskPending)],
		TaskOverdue:    counts[string(models.TaskOverdue)],
		GeneratedAt:    time.Now(),
	}
	for _, n := range counts {
		summary.TaskTotal += n
	}
	return summary, nil
}

func (s *projectService) BuildAllSummaries() ([]ProjectSummary, error) {
	projects, err := s.projectRepo.GetAll()
	if err != nil {
		return nil, err
	}

	summaries := make([]ProjectSummary, 0, len(projects))
	for _, project := range projects {
		summary, err := s.BuildSummary(project.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}
