package routes

import (
	"examportal/backend/config"
	"examportal/backend/controllers"
	"examportal/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	// Public catalog routes
	catalogController := controllers.NewCatalogController(db, cfg)
	app.Get("/api/home", catalogController.GetHome)
	app.Get("/api/categories", catalogController.GetCategories)
	app.Get("/api/categories/:slug/subjects", catalogController.GetSubjectsByCategory)
	app.Get("/api/subjects/:id/notes", catalogController.GetNotesBySubject)
	app.Get("/api/exams", catalogController.GetUpcomingExams)
	app.Get("/api/announcements", catalogController.GetAnnouncements)
	app.Get("/api/admit-cards", catalogController.GetAdmitCards)
	app.Get("/api/results", catalogController.GetResults)
	app.Get("/api/answer-keys", catalogController.GetAnswerKeys)

	// Search and contact
	searchController := controllers.NewSearchController(db, cfg)
	app.Get("/api/search", searchController.Search)

	contactController := controllers.NewContactController(db, cfg)
	app.Post("/api/contact", contactController.SubmitContact)

	// User routes
	app.Get("/api/user/profile", authMiddleware, authController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, authController.UpdateProfile)

	// Progress routes
	progressController := controllers.NewProgressController(db, cfg)
	app.Get("/api/progress", authMiddleware, progressController.GetProgress)
	app.Post("/api/progress/notes/:id/complete", authMiddleware, progressController.MarkNoteCompleted)

	// Study session routes
	sessionsController := controllers.NewSessionsController(db, cfg)
	sessions := app.Group("/api/study-sessions", authMiddleware)
	sessions.Get("/", sessionsController.GetSessions)
	sessions.Post("/", sessionsController.StartSession)
	sessions.Post("/:id/end", sessionsController.EndSession)

	// Exam target routes
	targetsController := controllers.NewTargetsController(db, cfg)
	app.Get("/api/exam-targets", authMiddleware, targetsController.GetTargets)
	app.Put("/api/exam-targets", authMiddleware, targetsController.SetTarget)

	// Dashboard
	dashboardController := controllers.NewDashboardController(db, cfg)
	app.Get("/api/dashboard", authMiddleware, dashboardController.GetDashboard)
}
