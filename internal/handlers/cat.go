package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	apierrors "github.com/yamaneko/cat-care-api/internal/errors"
	"github.com/yamaneko/cat-care-api/internal/services"
	"github.com/yamaneko/cat-care-api/internal/utils"
)

// CatHandler coordinates cat profile HTTP handlers.
type CatHandler struct {
	catService *services.CatService
	log        *logrus.Logger
}

// NewCatHandler creates a new CatHandler.
func NewCatHandler(catService *services.CatService, log *logrus.Logger) *CatHandler {
	return &CatHandler{
		catService: catService,
		log:        log,
	}
}

type catRequest struct {
	Name     string  `json:"name"`
	Gender   string  `json:"gender"`
	Birthday *string `json:"birthday"`
	Breed    *string `json:"breed"`
}

func (r catRequest) toInput() services.CatInput {
	return services.CatInput{
		Name:     r.Name,
		Gender:   r.Gender,
		Birthday: r.Birthday,
		Breed:    r.Breed,
	}
}

// ListCats returns cats, newest first
func (h *CatHandler) ListCats(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	cats, total, err := h.catService.ListCats(params.Page, params.Limit)
	if err != nil {
		h.log.WithError(err).Error("Failed to list cats")
		apierrors.InternalError(c, "Failed to fetch cats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cats": cats,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetCat returns a specific cat by ID
func (h *CatHandler) GetCat(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	cat, err := h.catService.GetCat(id)
	if err != nil {
		h.respondCatError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cat": cat})
}

// CreateCat creates a new cat
func (h *CatHandler) CreateCat(c *gin.Context) {
	var req catRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	cat, err := h.catService.CreateCat(req.toInput())
	if err != nil {
		h.respondCatError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"cat": cat})
}

// UpdateCat updates an existing cat
func (h *CatHandler) UpdateCat(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req catRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	cat, err := h.catService.UpdateCat(id, req.toInput())
	if err != nil {
		h.respondCatError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cat": cat})
}

// DeleteCat deletes a cat
func (h *CatHandler) DeleteCat(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.catService.DeleteCat(id); err != nil {
		h.respondCatError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cat deleted successfully"})
}

func (h *CatHandler) respondCatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCatNotFound):
		apierrors.NotFound(c, "Cat not found")
	case errors.Is(err, services.ErrNameRequired):
		apierrors.BadRequest(c, "Name is required")
	case errors.Is(err, services.ErrGenderRequired):
		apierrors.BadRequest(c, "Gender is required")
	case errors.Is(err, services.ErrInvalidBirthday):
		apierrors.BadRequest(c, "Invalid birthday")
	default:
		h.log.WithError(err).Error("Cat operation failed")
		apierrors.InternalError(c, "")
	}
}
