package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yamaneko/cat-care-api/internal/constants"
	"github.com/yamaneko/cat-care-api/internal/dto"
	apierrors "github.com/yamaneko/cat-care-api/internal/errors"
	"github.com/yamaneko/cat-care-api/internal/models"
	"github.com/yamaneko/cat-care-api/internal/repository"
	"github.com/yamaneko/cat-care-api/internal/services"
	"github.com/yamaneko/cat-care-api/internal/utils"
)

// TaskHandler coordinates scheduled-task HTTP handlers.
type TaskHandler struct {
	taskService  *services.TaskService
	materializer *services.Materializer
	log          *logrus.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, materializer *services.Materializer, log *logrus.Logger) *TaskHandler {
	return &TaskHandler{
		taskService:  taskService,
		materializer: materializer,
		log:          log,
	}
}

// ListTasksForDate materializes due recurring schedules for the date in the
// path and returns the full day's tasks.
func (h *TaskHandler) ListTasksForDate(c *gin.Context) {
	tasks, err := h.materializer.MaterializeAndListForDate(c.Param("date"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidDate) {
			apierrors.BadRequest(c, "Invalid date format")
			return
		}
		h.log.WithError(err).Error("Materialization failed")
		apierrors.InternalError(c, "Failed to fetch tasks for date")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
	})
}

// ListTasks returns scheduled tasks ordered by scheduled timestamp
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := repository.TaskFilter{
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.TaskStatus(statusStr)
		if !models.ValidTaskStatus(status) {
			apierrors.BadRequest(c, "Invalid status filter")
			return
		}
		filter.Status = &status
	}
	if assignedStr := c.Query("assignedTo"); assignedStr != "" {
		assignedTo, err := strconv.ParseUint(assignedStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid assignedTo filter")
			return
		}
		filter.AssignedTo = &assignedTo
	}

	tasks, total, err := h.taskService.ListTasks(filter)
	if err != nil {
		h.log.WithError(err).Error("Failed to list tasks")
		apierrors.InternalError(c, "Failed to fetch scheduled tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetTask returns a specific scheduled task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": dto.ToTaskDTO(*task)})
}

// CreateTask creates a new scheduled task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		PredefinedTaskID uint64  `json:"predefinedTaskId" binding:"required"`
		ScheduledOn      string  `json:"scheduledOn" binding:"required"`
		Duration         *int    `json:"duration"`
		Status           string  `json:"status"`
		AssignedTo       *uint64 `json:"assignedTo"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	scheduledOn, err := parseTimestamp(req.ScheduledOn)
	if err != nil {
		apierrors.BadRequest(c, "Invalid scheduledOn timestamp")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		PredefinedTaskID: req.PredefinedTaskID,
		ScheduledOn:      scheduledOn,
		Duration:         req.Duration,
		Status:           models.TaskStatus(req.Status),
		AssignedTo:       req.AssignedTo,
	})
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": dto.ToTaskDTO(*task)})
}

// UpdateTask applies a partial update to a scheduled task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		PredefinedTaskID *uint64 `json:"predefinedTaskId"`
		ScheduledOn      *string `json:"scheduledOn"`
		Duration         *int    `json:"duration"`
		Status           *string `json:"status"`
		AssignedTo       *uint64 `json:"assignedTo"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		PredefinedTaskID: req.PredefinedTaskID,
		Duration:         req.Duration,
		AssignedTo:       req.AssignedTo,
	}
	if req.ScheduledOn != nil {
		scheduledOn, err := parseTimestamp(*req.ScheduledOn)
		if err != nil {
			apierrors.BadRequest(c, "Invalid scheduledOn timestamp")
			return
		}
		input.ScheduledOn = &scheduledOn
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		input.Status = &status
	}

	task, err := h.taskService.UpdateTask(id, input)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": dto.ToTaskDTO(*task)})
}

// DeleteTask deletes a scheduled task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(id); err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func (h *TaskHandler) respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrPredefinedTaskNotFound):
		apierrors.NotFound(c, "Predefined task not found")
	case errors.Is(err, services.ErrAssigneeNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, "Invalid task status")
	case errors.Is(err, services.ErrInvalidDuration):
		apierrors.BadRequest(c, "Duration must be a positive integer")
	default:
		h.log.WithError(err).Error("Task operation failed")
		apierrors.InternalError(c, "")
	}
}

// parseIDParam parses the :id path segment, responding 400 on failure.
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid ID")
		return 0, false
	}
	return id, true
}

// parseTimestamp accepts an RFC 3339 timestamp or a bare calendar date.
func parseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(constants.DateLayout, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a timestamp", value)
}
