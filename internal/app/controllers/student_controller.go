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

// StudentController handles student registration, listing and bulk import
type StudentController struct {
	studentService    *services.StudentService
	bulkUploadService *services.BulkUploadService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, bulkUploadService *services.BulkUploadService) *StudentController {
	return &StudentController{
		studentService:    studentService,
		bulkUploadService: bulkUploadService,
	}
}

// Register godoc
// @Summary Register a student
// @Description Creates a login account and a student profile in one step
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.RegisterStudentRequest true "Student details"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /students [post]
func (c *StudentController) Register(ctx *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.studentService.Register(ctx, middleware.CurrentScope(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
}

// GetByID returns one student with their account details
func (c *StudentController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.studentService.GetByID(ctx, middleware.CurrentScope(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// List returns students filtered by college, batch and free-text search
func (c *StudentController) List(ctx *gin.Context) {
	collegeID, _ := strconv.ParseInt(ctx.Query("collegeId"), 10, 64)
	batchID, _ := strconv.ParseInt(ctx.Query("batchId"), 10, 64)
	search := ctx.Query("search")

	page, size := helpers.ParsePaginationParams(ctx)
	resp, err := c.studentService.List(ctx, middleware.CurrentScope(ctx), collegeID, batchID, search, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// Update modifies a student's profile and account fields
func (c *StudentController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.studentService.Update(ctx, middleware.CurrentScope(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// Delete removes a student profile together with its login account
func (c *StudentController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.Delete(ctx, middleware.CurrentScope(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Student deleted"}))
}

// BulkUpload godoc
// @Summary Import students from a CSV file
// @Description Processes each row independently; a failing row is reported and skipped while the rest are created
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Param collegeId formData int true "College ID"
// @Param file formData file true "CSV file"
// @Success 200 {object} dto.APIResponse{data=dto.BulkUploadResult}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /students/bulk-upload [post]
func (c *StudentController) BulkUpload(ctx *gin.Context) {
	collegeID, err := strconv.ParseInt(ctx.PostForm("collegeId"), 10, 64)
	if err != nil || collegeID <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "collegeId form field is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A CSV file is required in the 'file' form field")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Failed to read uploaded file")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
		return
	}
	defer file.Close()

	result, err := c.bulkUploadService.Upload(ctx, middleware.CurrentScope(ctx), collegeID, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}

// DownloadTemplate serves the CSV import template
func (c *StudentController) DownloadTemplate(ctx *gin.Context) {
	ctx.Header("Content-Disposition", `attachment; filename="student_upload_template.csv"`)
	ctx.Data(http.StatusOK, "text/csv", []byte(services.CSVTemplate()))
}
