package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medprep/campus/internal/app/models/dto"
	"github.com/medprep/campus/internal/app/services"
	"github.com/medprep/campus/internal/middleware"
)

// AnalyticsController handles headcount and summary endpoints
type AnalyticsController struct {
	analyticsService *services.AnalyticsService
}

// NewAnalyticsController creates a new AnalyticsController
func NewAnalyticsController(analyticsService *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
	}
}

// CollegeAnalytics returns entity counts for one college, with students
// broken down by batch
func (c *AnalyticsController) CollegeAnalytics(ctx *gin.Context) {
	collegeID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.analyticsService.CollegeAnalytics(ctx, middleware.CurrentScope(ctx), collegeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// MyCollegeAnalytics returns entity counts for the caller's own college
func (c *AnalyticsController) MyCollegeAnalytics(ctx *gin.Context) {
	scope := middleware.CurrentScope(ctx)
	if scope.CollegeID <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Caller is not bound to a college")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.analyticsService.CollegeAnalytics(ctx, scope, scope.CollegeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// PlatformAnalytics returns totals across every college
func (c *AnalyticsController) PlatformAnalytics(ctx *gin.Context) {
	resp, err := c.analyticsService.PlatformAnalytics(ctx, middleware.CurrentScope(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}
