package controllers

import (
	"math"

	"studybuddy/backend/config"
	"studybuddy/backend/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type StatsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewStatsController(db *gorm.DB, cfg *config.Config) *StatsController {
	return &StatsController{DB: db, Cfg: cfg}
}

// GetStats godoc
// @Summary Platform totals for the admin dashboard
// @Tags stats
// @Produce json
// @Success 200 {object} models.PlatformStats
// @Router /stats [get]
func (sc *StatsController) GetStats(c *fiber.Ctx) error {
	stats, err := sc.collect(c)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

func (sc *StatsController) collect(c *fiber.Ctx) (*models.PlatformStats, error) {
	var stats models.PlatformStats
	var completed, expected int64

	g, ctx := errgroup.WithContext(c.UserContext())
	db := sc.DB.WithContext(ctx)

	g.Go(func() error {
		return db.Model(&models.User{}).Count(&stats.TotalUsers).Error
	})
	g.Go(func() error {
		return db.Model(&models.Course{}).Count(&stats.TotalCourses).Error
	})
	g.Go(func() error {
		return db.Model(&models.Enrollment{}).Count(&stats.TotalEnrollments).Error
	})
	g.Go(func() error {
		return db.Model(&models.Enrollment{}).Distinct("student_id").Count(&stats.ActiveUsers).Error
	})
	// Revenue is course price per paid enrollment, not the payment ledger.
	g.Go(func() error {
		return db.Model(&models.Enrollment{}).
			Select("COALESCE(SUM(courses.price), 0)").
			Joins("JOIN courses ON courses.id = enrollments.course_id").
			Where("courses.price > 0").
			Scan(&stats.Revenue).Error
	})
	g.Go(func() error {
		return db.Model(&models.CompletedLesson{}).Count(&completed).Error
	})
	g.Go(func() error {
		return db.Model(&models.Enrollment{}).
			Joins("JOIN lessons ON lessons.course_id = enrollments.course_id").
			Count(&expected).Error
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	stats.CompletionRate = completionRate(stats.TotalEnrollments, completed, expected)
	return &stats, nil
}

// completionRate is completed / expected lessons as a whole percentage.
func completionRate(enrollments, completed, expected int64) int {
	if enrollments == 0 {
		return 0
	}
	if expected == 0 {
		expected = 1
	}
	rate := int(math.Round(float64(completed) / float64(expected) * 100))
	if rate < 0 {
		return 0
	}
	if rate > 100 {
		return 100
	}
	return rate
}
