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

// FacultyController handles faculty registration and management endpoints
type FacultyController struct {
	facultyService *services.FacultyService
}

// NewFacultyController creates a new FacultyController
func NewFacultyController(facultyService *services.FacultyService) *FacultyController {
	return &FacultyController{
		facultyService: facultyService,
	}
}

// Register godoc
// @Summary Register a faculty member
// @Description Creates a login account and a faculty profile, optionally assigned to subjects
// @Tags faculty
// @Accept json
// @Produce json
// @Param request body dto.RegisterFacultyRequest true "Faculty details"
// @Success 201 {object} dto.APIResponse{data=dto.FacultyResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /faculty [post]
func (c *FacultyController) Register(ctx *gin.Context) {
	var req dto.RegisterFacultyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.facultyService.Register(ctx, middleware.CurrentScope(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
}

// GetByID returns one faculty member with their subject assignments
func (c *FacultyController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.facultyService.GetByID(ctx, middleware.CurrentScope(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// List returns faculty filtered by college, subject, status and designation
func (c *FacultyController) List(ctx *gin.Context) {
	collegeID, _ := strconv.ParseInt(ctx.Query("collegeId"), 10, 64)
	subjectID, _ := strconv.ParseInt(ctx.Query("subjectId"), 10, 64)
	status := ctx.Query("status")
	designation := ctx.Query("designation")

	page, size := helpers.ParsePaginationParams(ctx)
	resp, err := c.facultyService.List(ctx, middleware.CurrentScope(ctx), collegeID, subjectID, status, designation, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// Update modifies a faculty member; a subject list in the payload replaces
// the existing assignments
func (c *FacultyController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateFacultyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.facultyService.Update(ctx, middleware.CurrentScope(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// Delete removes a faculty profile together with its login account
func (c *FacultyController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.facultyService.Delete(ctx, middleware.CurrentScope(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Faculty member deleted"}))
}
