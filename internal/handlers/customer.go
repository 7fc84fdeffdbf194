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

// CustomerHandler coordinates customer profile HTTP handlers.
type CustomerHandler struct {
	customerService *services.CustomerService
	log             *logrus.Logger
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerService *services.CustomerService, log *logrus.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		log:             log,
	}
}

type customerRequest struct {
	Name     string  `json:"name"`
	Gender   string  `json:"gender"`
	Type     string  `json:"type"`
	Birthday *string `json:"birthday"`
	Breed    *string `json:"breed"`
}

func (r customerRequest) toInput() services.CustomerInput {
	return services.CustomerInput{
		Name:     r.Name,
		Gender:   r.Gender,
		Type:     r.Type,
		Birthday: r.Birthday,
		Breed:    r.Breed,
	}
}

// ListCustomers returns customers, newest first
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	customers, total, err := h.customerService.ListCustomers(params.Page, params.Limit)
	if err != nil {
		h.log.WithError(err).Error("Failed to list customers")
		apierrors.InternalError(c, "Failed to fetch customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers": customers,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetCustomer returns a specific customer by ID
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomer(id)
	if err != nil {
		h.respondCustomerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

// CreateCustomer creates a new customer
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.CreateCustomer(req.toInput())
	if err != nil {
		h.respondCustomerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"customer": customer})
}

// UpdateCustomer updates an existing customer
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.UpdateCustomer(id, req.toInput())
	if err != nil {
		h.respondCustomerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

// DeleteCustomer deletes a customer
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.customerService.DeleteCustomer(id); err != nil {
		h.respondCustomerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

func (h *CustomerHandler) respondCustomerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCustomerNotFound):
		apierrors.NotFound(c, "Customer not found")
	case errors.Is(err, services.ErrNameRequired):
		apierrors.BadRequest(c, "Name is required")
	case errors.Is(err, services.ErrGenderRequired):
		apierrors.BadRequest(c, "Gender is required")
	case errors.Is(err, services.ErrInvalidBirthday):
		apierrors.BadRequest(c, "Invalid birthday")
	default:
		h.log.WithError(err).Error("Customer operation failed")
		apierrors.InternalError(c, "")
	}
}
