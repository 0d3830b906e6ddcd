package utils

import (
	"errors"
	"fmt"
	"time"

	"studybuddy/backend/config"
	"studybuddy/backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const connectRetryDelay = 2 * time.Second

// InitDB opens the configured database, retrying while it comes up.
func InitDB(cfg *config.Config, log *Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBPath)
	case "postgres", "":
		dialector = postgres.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         NewGormLogger(log),
	}

	attempts := cfg.DBConnectRetries
	if attempts < 1 {
		attempts = 1
	}

	var db *gorm.DB
	var err error
	for i := 0; i < attempts; i++ {
		db, err = gorm.Open(dialector, gormCfg)
		if err == nil {
			break
		}
		log.Warn("Database connection attempt failed", "attempt", i+1, "error", err)
		if i < attempts-1 {
			time.Sleep(connectRetryDelay)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect to database after %d attempts: %w", attempts, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DBMaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info("Connected to database", "driver", cfg.DBDriver)
	return db, nil
}

// Migrate creates or updates every table, unique indexes included.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Course{},
		&models.Lesson{},
		&models.Quiz{},
		&models.QuizQuestion{},
		&models.Enrollment{},
		&models.CompletedLesson{},
		&models.QuizScore{},
		&models.Payment{},
		&models.Certificate{},
		&models.Question{},
		&models.Report{},
	)
}

var defaultCategories = []models.Category{
	{Name: "Programming", Icon: "code"},
	{Name: "Design", Icon: "palette"},
	{Name: "Business", Icon: "briefcase"},
	{Name: "Data Science", Icon: "chart"},
	{Name: "Languages", Icon: "globe"},
}

// Seed fills the categories table when it is empty and, with demo set,
// adds a small demo catalog. Running it twice changes nothing.
func Seed(db *gorm.DB, log *Logger, demo bool) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		categories := append([]models.Category(nil), defaultCategories...)
		if err := db.Create(&categories).Error; err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
		log.Info("Seeded categories", "count", len(categories))
	}
	if !demo {
		return nil
	}
	return seedDemo(db, log)
}

func seedDemo(db *gorm.DB, log *Logger) error {
	var existing models.User
	err := db.Where("email = ?", "admin@studybuddy.dev").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		users := []models.User{
			{Name: "Admin", Email: "admin@studybuddy.dev", PasswordHash: string(hash), Role: models.RoleAdmin},
			{Name: "Irene Instructor", Email: "instructor@studybuddy.dev", PasswordHash: string(hash), Role: models.RoleInstructor},
			{Name: "Sam Student", Email: "student@studybuddy.dev", PasswordHash: string(hash), Role: models.RoleStudent},
		}
		if err := tx.Create(&users).Error; err != nil {
			return err
		}
		instructorID := users[1].ID

		courses := []models.Course{
			{
				Title: "Go Basics", Description: "Types, functions and packages.", InstructorID: instructorID,
				Category: "Programming", Level: "beginner", Duration: "2h", Price: 0, Rating: 4.6,
				Lessons: []models.Lesson{
					{Title: "Hello, Go", Duration: "10m", VideoURL: "#", SortOrder: 1},
					{Title: "Control flow", Duration: "15m", VideoURL: "#", SortOrder: 2},
				},
			},
			{
				Title: "Databases in Practice", Description: "Schemas, indexes and transactions.", InstructorID: instructorID,
				Category: "Data Science", Level: "intermediate", Duration: "4h", Price: 49.99, Rating: 4.8,
				Lessons: []models.Lesson{
					{Title: "Modeling", Duration: "20m", VideoURL: "#", SortOrder: 1},
					{Title: "Transactions", Duration: "25m", VideoURL: "#", SortOrder: 2},
				},
				Quizzes: []models.Quiz{
					{Title: "Transactions quiz", Questions: []models.QuizQuestion{
						{Question: "What does ROLLBACK do?", Options: []byte(`["Undoes the transaction","Commits it"]`), CorrectAnswer: 0, SortOrder: 1},
					}},
				},
			},
		}
		if err := tx.Create(&courses).Error; err != nil {
			return err
		}
		log.Info("Seeded demo data", "users", len(users), "courses", len(courses))
		return nil
	})
}
