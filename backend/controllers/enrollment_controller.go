package controllers

import (
	"studybuddy/backend/config"
	"studybuddy/backend/models"
	"studybuddy/backend/services"
	"studybuddy/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EnrollmentController covers enrolling, certificates and payment history.
type EnrollmentController struct {
	DB           *gorm.DB
	Cfg          *config.Config
	Enrollments  *services.EnrollmentService
	Certificates *services.CertificateService
}

func NewEnrollmentController(db *gorm.DB, cfg *config.Config, log *utils.Logger) *EnrollmentController {
	return &EnrollmentController{
		DB:           db,
		Cfg:          cfg,
		Enrollments:  services.NewEnrollmentService(db, log),
		Certificates: services.NewCertificateService(db, services.NewProgressService(db), log),
	}
}

type enrollInput struct {
	StudentID uint                  `json:"studentId"`
	Payment   *services.PaymentInfo `json:"payment"`
}

type certificateInput struct {
	StudentID uint `json:"studentId"`
}

// Enroll godoc
// @Summary Enroll a student in a course
// @Description Paid courses need card details; the payment is simulated
// @Tags enrollment
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /courses/{id}/enroll [post]
func (ec *EnrollmentController) Enroll(c *fiber.Ctx) error {
	courseID, err := paramID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	var input enrollInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.StudentID == 0 {
		return utils.BadRequest(c, "studentId is required")
	}

	res, err := ec.Enrollments.Enroll(c.UserContext(), input.StudentID, courseID, input.Payment)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Created(c, fiber.Map{
		"message":     "Enrolled successfully",
		"courseTitle": res.CourseTitle,
		"price":       res.Price,
		"paymentId":   res.PaymentID,
	})
}

// IssueCertificate returns 201 for a new certificate and 200 when it
// already existed.
func (ec *EnrollmentController) IssueCertificate(c *fiber.Ctx) error {
	courseID, err := paramID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	var input certificateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.StudentID == 0 {
		return utils.BadRequest(c, "studentId is required")
	}

	cert, err := ec.Certificates.Issue(c.UserContext(), input.StudentID, courseID)
	if err != nil {
		return utils.Fail(c, err)
	}
	if cert.AlreadyIssued {
		return c.JSON(cert)
	}
	return utils.Created(c, cert)
}

func (ec *EnrollmentController) GetCertificates(c *fiber.Ctx) error {
	studentID, ok, err := queryID(c, "studentId")
	if err != nil {
		return utils.Fail(c, err)
	}
	if !ok {
		return utils.BadRequest(c, "studentId is required")
	}
	certs, err := ec.Certificates.ListForStudent(c.UserContext(), studentID)
	if err != nil {
		return err
	}
	return c.JSON(certs)
}

func (ec *EnrollmentController) GetPayments(c *fiber.Ctx) error {
	studentID, ok, err := queryID(c, "studentId")
	if err != nil {
		return utils.Fail(c, err)
	}
	if !ok {
		return utils.BadRequest(c, "studentId is required")
	}

	payments := []models.Payment{}
	if err := ec.DB.Select("payments.*, courses.title AS course_title").
		Joins("JOIN courses ON courses.id = payments.course_id").
		Where("payments.student_id = ?", studentID).
		Order("payments.paid_at DESC, payments.id DESC").
		Find(&payments).Error; err != nil {
		return err
	}
	return c.JSON(payments)
}
