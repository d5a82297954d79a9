package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karmic/meals-api/models"
	"github.com/karmic/meals-api/services"
)

// OrderAggregator provides the per-item order totals
type OrderAggregator interface {
	AggregateByItem(ctx context.Context) ([]models.DashboardRow, error)
}

// ReportProvider renders and archives dashboard reports
type ReportProvider interface {
	DashboardPDF(ctx context.Context) (*services.DashboardReport, error)
	ArchiveDashboard(ctx context.Context) (*services.ArchivedReport, error)
}

// DashboardController serves the chef-facing order totals
type DashboardController struct {
	orders  OrderAggregator
	reports ReportProvider
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(orders OrderAggregator, reports ReportProvider) *DashboardController {
	return &DashboardController{orders: orders, reports: reports}
}

// Dashboard handles GET /api/v1/chef/dashboard
func (ctl *DashboardController) Dashboard(c *gin.Context) {
	rows, err := ctl.orders.AggregateByItem(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to aggregate orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rows,
	})
}

// DashboardPDF handles GET /api/v1/chef/dashboard/pdf
func (ctl *DashboardController) DashboardPDF(c *gin.Context) {
	report, err := ctl.reports.DashboardPDF(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to generate dashboard report")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", report.Filename()))
	c.Data(http.StatusOK, "application/pdf", report.PDF)
}

// ArchiveDashboard handles POST /api/v1/chef/dashboard/archive
func (ctl *DashboardController) ArchiveDashboard(c *gin.Context) {
	report, err := ctl.reports.ArchiveDashboard(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to archive dashboard report")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    report,
	})
}
