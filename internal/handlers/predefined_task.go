package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yamaneko/cat-care-api/internal/dto"
	apierrors "github.com/yamaneko/cat-care-api/internal/errors"
	"github.com/yamaneko/cat-care-api/internal/models"
	"github.com/yamaneko/cat-care-api/internal/services"
	"github.com/yamaneko/cat-care-api/internal/utils"
)

// PredefinedTaskHandler coordinates task-template HTTP handlers.
type PredefinedTaskHandler struct {
	templateService *services.PredefinedTaskService
	log             *logrus.Logger
}

// NewPredefinedTaskHandler creates a new PredefinedTaskHandler.
func NewPredefinedTaskHandler(templateService *services.PredefinedTaskService, log *logrus.Logger) *PredefinedTaskHandler {
	return &PredefinedTaskHandler{
		templateService: templateService,
		log:             log,
	}
}

// recurringRequest mirrors one entry of the recurring array in payloads.
type recurringRequest struct {
	Type       string `json:"type" binding:"required"`
	Time       string `json:"time" binding:"required"`
	Weekday    *int   `json:"weekday"`
	DayOfMonth *int   `json:"dayOfMonth"`
}

type predefinedTaskRequest struct {
	Name        string             `json:"name" binding:"required"`
	Description string             `json:"description"`
	Recurring   []recurringRequest `json:"recurring"`
}

func (r predefinedTaskRequest) toInput() services.PredefinedTaskInput {
	recurring := make([]services.RecurringInput, len(r.Recurring))
	for i, rec := range r.Recurring {
		recurring[i] = services.RecurringInput{
			Type:       models.ScheduleType(rec.Type),
			Time:       rec.Time,
			Weekday:    rec.Weekday,
			DayOfMonth: rec.DayOfMonth,
		}
	}
	return services.PredefinedTaskInput{
		Name:        r.Name,
		Description: r.Description,
		Recurring:   recurring,
	}
}

// ListPredefinedTasks returns all task templates, newest first
func (h *PredefinedTaskHandler) ListPredefinedTasks(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	tasks, total, err := h.templateService.ListPredefinedTasks(params.Page, params.Limit)
	if err != nil {
		h.log.WithError(err).Error("Failed to list predefined tasks")
		apierrors.InternalError(c, "Failed to fetch predefined tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"predefinedTasks": dto.ToPredefinedTaskDTOs(tasks),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetPredefinedTask returns a template with its schedules
func (h *PredefinedTaskHandler) GetPredefinedTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.templateService.GetPredefinedTask(id)
	if err != nil {
		h.respondTemplateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"predefinedTask": dto.ToPredefinedTaskDTO(*task)})
}

// CreatePredefinedTask creates a template with optional recurrence rules
func (h *PredefinedTaskHandler) CreatePredefinedTask(c *gin.Context) {
	var req predefinedTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.templateService.CreatePredefinedTask(req.toInput())
	if err != nil {
		h.respondTemplateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"predefinedTask": dto.ToPredefinedTaskDTO(*task)})
}

// UpdatePredefinedTask updates a template; recurrence rules in the payload
// are appended to the existing set
func (h *PredefinedTaskHandler) UpdatePredefinedTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req predefinedTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.templateService.UpdatePredefinedTask(id, req.toInput())
	if err != nil {
		h.respondTemplateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"predefinedTask": dto.ToPredefinedTaskDTO(*task)})
}

// DeletePredefinedTask removes a template and its schedules
func (h *PredefinedTaskHandler) DeletePredefinedTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.templateService.DeletePredefinedTask(id); err != nil {
		h.respondTemplateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Predefined task deleted successfully"})
}

func (h *PredefinedTaskHandler) respondTemplateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPredefinedTaskNotFound):
		apierrors.NotFound(c, "Predefined task not found")
	case errors.Is(err, services.ErrTaskNameRequired):
		apierrors.BadRequest(c, "Task name is required")
	case errors.Is(err, services.ErrInvalidSchedule):
		apierrors.BadRequest(c, err.Error())
	default:
		h.log.WithError(err).Error("Predefined task operation failed")
		apierrors.InternalError(c, "")
	}
}
