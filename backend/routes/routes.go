package routes

import (
	"time"

	"studybuddy/backend/config"
	"studybuddy/backend/controllers"
	"studybuddy/backend/middleware"
	"studybuddy/backend/utils"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// NewApp builds the Fiber app with middleware and every API route.
func NewApp(db *gorm.DB, cfg *config.Config, log *utils.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "StudyBuddy API",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: utils.ErrorHandler(log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	// Middleware
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggingMiddleware(log))
	app.Use(recover.New())
	app.Use(middleware.PreflightMiddleware(cfg.AllowOrigins))
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.AllowOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, X-Request-ID",
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		ExposeHeaders: middleware.HeaderRequestID,
	}))
	app.Use(compress.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	SetupRoutes(app, db, cfg, log)
	return app
}

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, log *utils.Logger) {
	api := app.Group("/api")

	// Auth routes
	authController := controllers.NewAuthController(db, cfg, log)
	auth := api.Group("/auth")
	if cfg.AuthRateLimit > 0 {
		auth.Use(limiter.New(limiter.Config{
			Max:        cfg.AuthRateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return utils.Error(c, fiber.StatusTooManyRequests, "Too many requests")
			},
		}))
	}
	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)

	// Courses routes
	coursesController := controllers.NewCoursesController(db, cfg, log)
	lessonsController := controllers.NewLessonsController(db, cfg)
	quizzesController := controllers.NewQuizzesController(db, cfg)
	enrollmentController := controllers.NewEnrollmentController(db, cfg, log)

	courses := api.Group("/courses")
	courses.Get("/", coursesController.GetCourses)
	courses.Post("/", coursesController.CreateCourse)
	courses.Get("/:id", coursesController.GetCourse)
	courses.Put("/:id", coursesController.UpdateCourse)
	courses.Get("/:id/students", coursesController.GetCourseStudents)
	courses.Post("/:id/enroll", enrollmentController.Enroll)
	courses.Post("/:id/certificate", enrollmentController.IssueCertificate)

	courses.Get("/:id/lessons", lessonsController.GetLessons)
	courses.Post("/:id/lessons", lessonsController.AddLesson)
	courses.Delete("/:id/lessons", lessonsController.DeleteLesson)
	courses.Post("/:id/lessons/complete", lessonsController.CompleteLesson)

	courses.Post("/:id/quizzes", quizzesController.CreateQuiz)
	courses.Delete("/:id/quizzes", quizzesController.DeleteQuiz)

	// Quizzes routes
	api.Get("/quizzes/:id", quizzesController.GetQuiz)
	api.Post("/quizzes/:id/submit", quizzesController.SubmitScore)

	api.Get("/certificates", enrollmentController.GetCertificates)
	api.Get("/payments", enrollmentController.GetPayments)

	// Q&A routes
	questionsController := controllers.NewQuestionsController(db, cfg)
	api.Get("/questions", questionsController.GetQuestions)
	api.Post("/questions", questionsController.AskQuestion)
	api.Put("/questions/:id/answer", questionsController.AnswerQuestion)

	// Admin routes
	reportsController := controllers.NewReportsController(db, cfg, log)
	api.Get("/reports", reportsController.GetReports)
	api.Post("/reports", reportsController.CreateReport)
	api.Put("/reports", reportsController.UpdateReport)

	statsController := controllers.NewStatsController(db, cfg)
	api.Get("/stats", statsController.GetStats)

	usersController := controllers.NewUsersController(db, cfg)
	api.Get("/users", usersController.GetUsers)
	api.Get("/categories", usersController.GetCategories)
}
