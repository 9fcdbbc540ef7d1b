package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/eprofos/eprofos-api/internal/app/controllers"
	"github.com/eprofos/eprofos-api/internal/app/models"
	"github.com/eprofos/eprofos-api/internal/app/models/dto"
	"github.com/eprofos/eprofos-api/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	catalogController *controllers.CatalogController,
	formationController *controllers.FormationController,
	contentController *controllers.ContentController,
	sessionController *controllers.SessionController,
	registrationController *controllers.RegistrationController,
	certificateController *controllers.CertificateController,
	needsAnalysisController *controllers.NeedsAnalysisController,
	legalDocumentController *controllers.LegalDocumentController,
	meController *controllers.MeController,
	exportController *controllers.ExportController,
	auditController *controllers.AuditController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public catalog routes ---
	formations := v1.Group("/formations")
	{
		formations.GET("", catalogController.ListFormations)
		formations.GET("/:slug", catalogController.GetFormation)
		formations.GET("/:slug/sessions", catalogController.GetOpenSessions)
	}

	// Public session registration. Logged-in students get the registration
	// linked to their account, anonymous visitors register by email only.
	v1.POST("/sessions/:id/register", authMiddleware.OptionalJWTAuth(), registrationController.RegisterForSession)

	// --- Public needs-analysis form routes (tokenized) ---
	analysisForm := v1.Group("/needs-analysis/form")
	{
		analysisForm.GET("/:token", needsAnalysisController.GetForm)
		analysisForm.POST("/:token", needsAnalysisController.SubmitForm)
	}

	// --- Public legal document routes ---
	legalDocuments := v1.Group("/legal-documents")
	{
		legalDocuments.GET("", legalDocumentController.ListPublishedDocuments)
		legalDocuments.GET("/:type", legalDocumentController.GetPublishedDocument)
		legalDocuments.GET("/:type/pdf", legalDocumentController.DownloadPublishedPDF)
	}

	// --- Public certificate verification ---
	v1.GET("/certificates/verify/:code", certificateController.VerifyCertificate)

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
		auth.GET("/verify-email", authController.VerifyEmail)
		auth.POST("/resend-verification", authController.ResendVerification)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	// --- Authenticated student routes ---
	me := v1.Group("/me")
	me.Use(authMiddleware.JWTAuth())
	{
		me.GET("", meController.GetProfile)
		me.GET("/registrations", meController.ListMyRegistrations)
		me.GET("/certificates", meController.ListMyCertificates)
		me.GET("/certificates/:id/pdf", meController.DownloadMyCertificatePDF)
	}

	// --- Admin routes ---
	admin := v1.Group("/admin")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(string(models.RoleAdmin)))
	{
		adminFormations := admin.Group("/formations")
		{
			adminFormations.GET("", formationController.ListFormations)
			adminFormations.POST("", formationController.CreateFormation)
			adminFormations.GET("/export", exportController.ExportFormations)
			adminFormations.GET("/:id", formationController.GetFormation)
			adminFormations.PUT("/:id", formationController.UpdateFormation)
			adminFormations.DELETE("/:id", formationController.DeleteFormation)
		}

		adminModules := admin.Group("/modules")
		{
			adminModules.POST("", contentController.CreateModule)
			adminModules.GET("/:id", contentController.GetModule)
			adminModules.PUT("/:id", contentController.UpdateModule)
			adminModules.DELETE("/:id", contentController.DeleteModule)
		}

		adminChapters := admin.Group("/chapters")
		{
			adminChapters.POST("", contentController.CreateChapter)
			adminChapters.GET("/:id", contentController.GetChapter)
			adminChapters.PUT("/:id", contentController.UpdateChapter)
			adminChapters.DELETE("/:id", contentController.DeleteChapter)
		}

		adminCourses := admin.Group("/courses")
		{
			adminCourses.POST("", contentController.CreateCourse)
			adminCourses.GET("/:id", contentController.GetCourse)
			adminCourses.PUT("/:id", contentController.UpdateCourse)
			adminCourses.DELETE("/:id", contentController.DeleteCourse)
		}

		adminExercises := admin.Group("/exercises")
		{
			adminExercises.POST("", contentController.CreateExercise)
			adminExercises.PUT("/:id", contentController.UpdateExercise)
			adminExercises.DELETE("/:id", contentController.DeleteExercise)
		}

		adminQCMs := admin.Group("/qcms")
		{
			adminQCMs.POST("", contentController.CreateQCM)
			adminQCMs.PUT("/:id", contentController.UpdateQCM)
			adminQCMs.DELETE("/:id", contentController.DeleteQCM)
		}

		adminSessions := admin.Group("/sessions")
		{
			adminSessions.GET("", sessionController.ListSessions)
			adminSessions.POST("", sessionController.CreateSession)
			adminSessions.GET("/:id", sessionController.GetSession)
			adminSessions.PUT("/:id", sessionController.UpdateSession)
			adminSessions.PATCH("/:id/status", sessionController.ChangeSessionStatus)
			adminSessions.DELETE("/:id", sessionController.DeleteSession)
			adminSessions.GET("/:id/registrations", registrationController.ListSessionRegistrations)
			adminSessions.GET("/:id/registrations/export", exportController.ExportSessionRegistrations)
		}

		adminRegistrations := admin.Group("/registrations")
		{
			adminRegistrations.GET("/:id", registrationController.GetRegistration)
			adminRegistrations.PATCH("/:id/status", registrationController.ChangeRegistrationStatus)
		}

		adminCertificates := admin.Group("/certificates")
		{
			adminCertificates.POST("", certificateController.IssueCertificate)
			adminCertificates.GET("/:id", certificateController.GetCertificate)
			adminCertificates.GET("/:id/pdf", certificateController.DownloadCertificatePDF)
			adminCertificates.POST("/:id/revoke", certificateController.RevokeCertificate)
		}

		adminAnalyses := admin.Group("/needs-analysis")
		{
			adminAnalyses.GET("", needsAnalysisController.ListRequests)
			adminAnalyses.POST("", needsAnalysisController.CreateRequest)
			adminAnalyses.GET("/:id", needsAnalysisController.GetRequest)
			adminAnalyses.POST("/:id/send", needsAnalysisController.SendRequest)
			adminAnalyses.POST("/:id/cancel", needsAnalysisController.CancelRequest)
		}

		adminLegalDocuments := admin.Group("/legal-documents")
		{
			adminLegalDocuments.GET("", legalDocumentController.ListDocuments)
			adminLegalDocuments.POST("", legalDocumentController.CreateDocument)
			adminLegalDocuments.GET("/:id", legalDocumentController.GetDocument)
			adminLegalDocuments.PUT("/:id", legalDocumentController.UpdateDocument)
			adminLegalDocuments.POST("/:id/publish", legalDocumentController.PublishDocument)
			adminLegalDocuments.POST("/:id/archive", legalDocumentController.ArchiveDocument)
			adminLegalDocuments.DELETE("/:id", legalDocumentController.DeleteDocument)
		}

		admin.GET("/audit-logs", auditController.ListAuditLogs)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewAPIResponse(gin.H{"status": "ok"}))
	})
}
