package controllers

import (
	"strings"

	"studybuddy/backend/config"
	"studybuddy/backend/models"
	"studybuddy/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ReportsController struct {
	DB  *gorm.DB
	Cfg *config.Config
	Log *utils.Logger
}

func NewReportsController(db *gorm.DB, cfg *config.Config, log *utils.Logger) *ReportsController {
	return &ReportsController{DB: db, Cfg: cfg, Log: log}
}

type createReportInput struct {
	Type        string `json:"type"`
	UserID      uint   `json:"userId"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

type updateReportInput struct {
	ID     uint   `json:"id" validate:"required"`
	Status string `json:"status" validate:"required,oneof=pending resolved"`
}

// GetReports lists reports newest first, optionally filtered by ?status=.
func (rc *ReportsController) GetReports(c *fiber.Ctx) error {
	query := rc.DB.Model(&models.Report{}).
		Select("reports.*, users.name AS user_name").
		Joins("LEFT JOIN users ON users.id = reports.user_id")

	if status := c.Query("status"); status != "" {
		if status != models.ReportPending && status != models.ReportResolved {
			return utils.BadRequest(c, "status must be one of pending resolved")
		}
		query = query.Where("reports.status = ?", status)
	}

	reports := []models.Report{}
	if err := query.Order("reports.created_at DESC, reports.id DESC").Find(&reports).Error; err != nil {
		return err
	}
	return c.JSON(reports)
}

func (rc *ReportsController) CreateReport(c *fiber.Ctx) error {
	var input createReportInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	input.Type = strings.TrimSpace(input.Type)
	input.Subject = strings.TrimSpace(input.Subject)
	if input.Type == "" || input.UserID == 0 || input.Subject == "" {
		return utils.BadRequest(c, "type, userId, and subject are required")
	}

	report := models.Report{
		Type:        input.Type,
		UserID:      input.UserID,
		Subject:     input.Subject,
		Description: input.Description,
		Status:      models.ReportPending,
	}
	if err := rc.DB.Create(&report).Error; err != nil {
		return err
	}
	return utils.Created(c, report)
}

// UpdateReport moves a report between pending and resolved.
func (rc *ReportsController) UpdateReport(c *fiber.Ctx) error {
	var input updateReportInput
	if err := parseBody(c, &input); err != nil {
		return utils.Fail(c, err)
	}

	res := rc.DB.Model(&models.Report{}).Where("id = ?", input.ID).Update("status", input.Status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.NotFound(c, "Report not found")
	}
	rc.Log.Info("Report status changed", "report_id", input.ID, "status", input.Status)

	var report models.Report
	if err := rc.DB.Select("reports.*, users.name AS user_name").
		Joins("LEFT JOIN users ON users.id = reports.user_id").
		Where("reports.id = ?", input.ID).
		First(&report).Error; err != nil {
		return err
	}
	return c.JSON(report)
}
