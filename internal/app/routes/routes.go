package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/medprep/campus/internal/app/controllers"
	"github.com/medprep/campus/internal/app/models"
	"github.com/medprep/campus/internal/app/models/dto"
	"github.com/medprep/campus/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	collegeController *controllers.CollegeController,
	batchController *controllers.BatchController,
	studentController *controllers.StudentController,
	facultyController *controllers.FacultyController,
	subjectController *controllers.SubjectController,
	questionController *controllers.QuestionController,
	analyticsController *controllers.AnalyticsController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Session and profile routes
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/users/me", authController.GetProfile)
		authenticated.PUT("/users/me", authController.UpdateProfile)
		authenticated.PUT("/users/me/password", authController.ChangePassword)

		// College routes. Reads are tenant-scoped inside the service layer;
		// creation and deletion stay with the platform owner.
		colleges := authenticated.Group("/colleges")
		{
			colleges.GET("", collegeController.List)
			colleges.GET("/:id", collegeController.GetByID)

			collegesOwnerProtected := colleges.Group("")
			collegesOwnerProtected.Use(authMiddleware.RoleRequired(models.RoleProductOwner))
			{
				collegesOwnerProtected.POST("", collegeController.Create)
				collegesOwnerProtected.DELETE("/:id", collegeController.Delete)
			}

			collegesAdminProtected := colleges.Group("")
			collegesAdminProtected.Use(authMiddleware.RoleRequired(models.RoleProductOwner, models.RoleCollegeAdmin))
			{
				collegesAdminProtected.PUT("/:id", collegeController.Update)
				collegesAdminProtected.GET("/:id/analytics", analyticsController.CollegeAnalytics)
			}
		}

		// Batch routes
		batches := authenticated.Group("/batches")
		{
			batches.GET("", batchController.ListByCollege)
			batches.GET("/:id", batchController.GetByID)

			batchesAdminProtected := batches.Group("")
			batchesAdminProtected.Use(authMiddleware.RoleRequired(models.RoleProductOwner, models.RoleCollegeAdmin))
			{
				batchesAdminProtected.POST("", batchController.Create)
				batchesAdminProtected.PUT("/:id", batchController.Update)
				batchesAdminProtected.DELETE("/:id", batchController.Delete)
			}
		}

		// Student routes
		students := authenticated.Group("/students")
		{
			students.GET("", studentController.List)
			students.GET("/:id", studentController.GetByID)

			studentsAdminProtected := students.Group("")
			studentsAdminProtected.Use(authMiddleware.RoleRequired(models.RoleProductOwner, models.RoleCollegeAdmin))
			{
				studentsAdminProtected.POST("", studentController.Register)
				studentsAdminProtected.PUT("/:id", studentController.Update)
				studentsAdminProtected.DELETE("/:id", studentController.Delete)
				studentsAdminProtected.POST("/bulk-upload", studentController.BulkUpload)
				studentsAdminProtected.GET("/download-template", studentController.DownloadTemplate)
			}
		}

		// Faculty routes
		faculty := authenticated.Group("/faculty")
		{
			faculty.GET("", facultyController.List)
			faculty.GET("/:id", facultyController.GetByID)

			facultyAdminProtected := faculty.Group("")
			facultyAdminProtected.Use(authMiddleware.RoleRequired(models.RoleProductOwner, models.RoleCollegeAdmin))
			{
				facultyAdminProtected.POST("", facultyController.Register)
				facultyAdminProtected.PUT("/:id", facultyController.Update)
				facultyAdminProtected.DELETE("/:id", facultyController.Delete)
			}
		}

		// Subject and module routes
		subjects := authenticated.Group("/subjects")
		{
			subjects.GET("", subjectController.ListByCollege)
			subjects.GET("/:id", subjectController.GetByID)
			subjects.GET("/:id/modules", subjectController.ListModules)

			subjectsAdminProtected := subjects.Group("")
			subjectsAdminProtected.Use(authMiddleware.RoleRequired(models.RoleProductOwner, models.RoleCollegeAdmin))
			{
				subjectsAdminProtected.POST("", subjectController.Create)
				subjectsAdminProtected.PUT("/:id", subjectController.Update)
				subjectsAdminProtected.DELETE("/:id", subjectController.Delete)
			}
		}

		modules := authenticated.Group("/modules")
		modules.Use(authMiddleware.RoleRequired(models.RoleProductOwner, models.RoleCollegeAdmin))
		{
			modules.POST("", subjectController.CreateModule)
			modules.PUT("/:id", subjectController.UpdateModule)
			modules.DELETE("/:id", subjectController.DeleteModule)
		}

		// Question bank routes. Faculty can contribute alongside admins;
		// per-question ownership rules live in the service layer.
		questions := authenticated.Group("/questions")
		{
			questions.GET("", questionController.List)
			questions.GET("/:id", questionController.GetByID)

			questionsWriteProtected := questions.Group("")
			questionsWriteProtected.Use(authMiddleware.RoleRequired(models.RoleProductOwner, models.RoleCollegeAdmin, models.RoleFaculty))
			{
				questionsWriteProtected.POST("", questionController.Create)
				questionsWriteProtected.PUT("/:id", questionController.Update)
				questionsWriteProtected.DELETE("/:id", questionController.Delete)
			}
		}

		// Dashboard analytics: admins see their own college, platform-wide
		// totals stay with the owner
		analytics := authenticated.Group("/analytics")
		{
			analyticsAdminProtected := analytics.Group("")
			analyticsAdminProtected.Use(authMiddleware.RoleRequired(models.RoleCollegeAdmin))
			{
				analyticsAdminProtected.GET("", analyticsController.MyCollegeAnalytics)
			}

			analyticsOwnerProtected := analytics.Group("")
			analyticsOwnerProtected.Use(authMiddleware.RoleRequired(models.RoleProductOwner))
			{
				analyticsOwnerProtected.GET("/platform", analyticsController.PlatformAnalytics)
			}
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
