package services_test

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"report_manager/internal/models"
	"report_manager/internal/services"
)

type fakeProjectRepo struct {
	projects map[uint]*models.Project
	counts   map[uint]map[string]int
}

func (f *fakeProjectRepo) Create(project *models.Project) error {
	project.ID = uint(len(f.projects) + 1)
	f.projects[project.ID] = project
	return nil
}

func (f *fakeProjectRepo) GetByID(id uint) (*models.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProjectRepo) GetAll() ([]models.Project, error) {
	var out []models.Project
	for _, p := range f.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProjectRepo) Update(project *models.Project) error { return nil }
func (f *fakeProjectRepo) Delete(id uint) error                 { return nil }

func (f *fakeProjectRepo) CountTasksByStatus(projectID uint) (map[string]int, error) {
	return f.counts[projectID], nil
}

type fakeTaskRepo struct {
	tasks map[uint]*models.Task
}

func (f *fakeTaskRepo) Create(task *models.Task) error {
	task.ID = uint(len(f.tasks) + 1)
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeTaskRepo) GetByID(id uint) (*models.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (f *fakeTaskRepo) ListByProject(projectID uint) ([]models.Task, error) { return nil, nil }
func (f *fakeTaskRepo) ListByAssignee(userID uint) ([]models.Task, error)   { return nil, nil }
func (f *fakeTaskRepo) Update(task *models.Task) error                      { return nil }
func (f *fakeTaskRepo) Delete(id uint) error                                { return nil }
func (f *fakeTaskRepo) MarkOverdue(now time.Time) (int64, error)            { return 0, nil }

func TestBuildSummary(t *testing.T) {
	projectRepo := &fakeProjectRepo{
		projects: map[uint]*models.Project{
			1: {ID: 1, Name: "社内ポータル", Status: "active"},
		},
		counts: map[uint]map[string]int{
			1: {"completed": 3, "in_progress": 2, "pending": 1},
		},
	}
	svc := services.NewProjectService(projectRepo, &fakeTaskRepo{tasks: map[uint]*models.Task{}})

	summary, err := svc.BuildSummary(1)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.TaskTotal != 6 {
		t.Errorf("expected 6 tasks total, got %d", summary.TaskTotal)
	}
	if summary.TaskCompleted != 3 || summary.TaskInProgress != 2 || summary.TaskPending != 1 {
		t.Errorf("unexpected breakdown: %+v", summary)
	}
	if summary.Name != "社内ポータル" {
		t.Errorf("unexpected name: %s", summary.Name)
	}
	if summary.GeneratedAt.IsZero() {
		t.Error("expected a generation timestamp")
	}
}

func TestBuildSummary_UnknownProject(t *testing.T) {
	projectRepo := &fakeProjectRepo{projects: map[uint]*models.Project{}, counts: map[uint]map[string]int{}}
	svc := services.NewProjectService(projectRepo, &fakeTaskRepo{tasks: map[uint]*models.Task{}})

	if _, err := svc.BuildSummary(42); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected record-not-found, got %v", err)
	}
}

func TestUpdateTask_SetsCompletedAt(t *testing.T) {
	taskRepo := &fakeTaskRepo{tasks: map[uint]*models.Task{}}
	svc := services.NewProjectService(&fakeProjectRepo{projects: map[uint]*models.Project{}, counts: map[uint]map[string]int{}}, taskRepo)

	task := &models.Task{ID: 1, Status: string(models.TaskCompleted)}
	if err := svc.UpdateTask(task); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if task.CompletedAt == nil {
		t.Error("completing a task must stamp CompletedAt")
	}
}
