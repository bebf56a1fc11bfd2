package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/medprep/campus/internal/app/models/dto"
	"github.com/medprep/campus/internal/app/services"
	"github.com/medprep/campus/internal/middleware"
	"github.com/medprep/campus/internal/pkg/helpers"
)

// BatchController handles batch and academic year endpoints
type BatchController struct {
	batchService *services.BatchService
}

// NewBatchController creates a new BatchController
func NewBatchController(batchService *services.BatchService) *BatchController {
	return &BatchController{
		batchService: batchService,
	}
}

// Create adds a batch with its academic years
func (c *BatchController) Create(ctx *gin.Context) {
	var req dto.CreateBatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.batchService.Create(ctx, middleware.CurrentScope(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
}

// GetByID returns one batch
func (c *BatchController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.batchService.GetByID(ctx, middleware.CurrentScope(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// ListByCollege returns a college's batches
func (c *BatchController) ListByCollege(ctx *gin.Context) {
	collegeID, err := strconv.ParseInt(ctx.Query("collegeId"), 10, 64)
	if err != nil || collegeID <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "collegeId query parameter is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	resp, err := c.batchService.ListByCollege(ctx, middleware.CurrentScope(ctx), collegeID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// Update modifies a batch; academic years in the payload replace the
// existing set
func (c *BatchController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateBatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.batchService.Update(ctx, middleware.CurrentScope(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// Delete removes a batch
func (c *BatchController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.batchService.Delete(ctx, middleware.CurrentScope(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Batch deleted"}))
}
