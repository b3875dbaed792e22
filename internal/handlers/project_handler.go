package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"report_manager/internal/apperrors"
	"report_manager/internal/models"
	"report_manager/internal/services"
)

type ProjectHandler struct {
	projectService services.ProjectService
	refresher      *services.SummaryRefresher
}

func NewProjectHandler(projectService services.ProjectService, refresher *services.SummaryRefresher) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, refresher: refresher}
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.GetAllProjects()
	if err != nil {
		writeError(c, fmt.Errorf("%w: %v", apperrors.ErrNetwork, err))
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var project models.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		writeError(c, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		return
	}
	if project.Name == "" {
		writeError(c, fmt.Errorf("%w: missing project name", apperrors.ErrValidation))
		return
	}

	if err := h.projectService.CreateProject(&project); err != nil {
		writeError(c, fmt.Errorf("%w: %v", apperrors.ErrNetwork, err))
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	project, err := h.projectService.GetProjectByID(id)
	if err != nil {
		writeError(c, fmt.Errorf("%w: project %d", apperrors.ErrNotFound, id))
		return
	}

	var body models.Project
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		return
	}
	project.Name = body.Name
	project.Description = body.Description
	if body.Status != "" {
		project.Status = body.Status
	}

	if err := h.projectService.UpdateProject(project); err != nil {
		writeError(c, fmt.Errorf("%w: %v", apperrors.ErrNetwork, err))
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) ListTasks(c *gin.Context) {
	projectID, err := paramUint(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	tasks, err := h.projectService.GetTasksByProject(projectID)
	if err != nil {
		writeError(c, fmt.Errorf("%w: %v", apperrors.ErrNetwork, err))
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *ProjectHandler) CreateTask(c *gin.Context) {
	projectID, err := paramUint(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	var task models.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		writeError(c, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		return
	}
	if task.Title == "" {
		writeError(c, fmt.Errorf("%w: missing task title", apperrors.ErrValidation))
		return
	}
	task.ProjectID = projectID

	if err := h.projectService.CreateTask(&task); err != nil {
		writeError(c, fmt.Errorf("%w: %v", apperrors.ErrNetwork, err))
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *ProjectHandler) UpdateTask(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	task, err := h.projectService.GetTaskByID(id)
	if err != nil {
		writeError(c, fmt.Errorf("%w: task %d", apperrors.ErrNotFound, id))
		return
	}

	var body models.Task
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		return
	}
	task.Title = body.Title
	task.Description = body.Description
	task.AssignedTo = body.AssignedTo
	task.DueDate = body.DueDate
	if body.Status != "" {
		task.Status = body.Status
	}
	if body.Priority != "" {
		task.Priority = body.Priority
	}

	if err := h.projectService.UpdateTask(task); err != nil {
		writeError(c, fmt.Errorf("%w: %v", apperrors.ErrNetwork, err))
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *ProjectHandler) DeleteTask(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.projectService.DeleteTask(id); err != nil {
		writeError(c, fmt.Errorf("%w: %v", apperrors.ErrNetwork, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetSummaries serves the latest periodic snapshot of per-project task
// counts.
func (h *ProjectHandler) GetSummaries(c *gin.Context) {
	c.JSON(http.StatusOK, h.refresher.Snapshots())
}
