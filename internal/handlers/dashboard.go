package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	apierrors "github.com/yamaneko/cat-care-api/internal/errors"
	"github.com/yamaneko/cat-care-api/internal/services"
)

// DashboardHandler serves aggregated read-only views.
type DashboardHandler struct {
	customerService *services.CustomerService
	log             *logrus.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(customerService *services.CustomerService, log *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{
		customerService: customerService,
		log:             log,
	}
}

// CustomerSummary returns customer profiles with an optional customerType filter
func (h *DashboardHandler) CustomerSummary(c *gin.Context) {
	var customerType *string
	if v := c.Query("customerType"); v != "" {
		customerType = &v
	}

	customers, err := h.customerService.CustomerSummary(customerType)
	if err != nil {
		h.log.WithError(err).Error("Dashboard customer summary failed")
		apierrors.InternalError(c, "Failed to fetch customer summary")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers": customers,
		"total":     len(customers),
	})
}
