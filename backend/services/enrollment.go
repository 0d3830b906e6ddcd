package services

import (
	"context"
	"math"
	"strings"
	"time"

	"studybuddy/backend/models"
	"studybuddy/backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentStatusPaid = "paid"
	PaymentProvider   = "simulated"
	PaymentCurrency   = "USD"
)

// PaymentInfo is the card data sent with a paid enrollment. Only the
// cardholder name and last four digits are ever stored.
type PaymentInfo struct {
	Name       string `json:"name"`
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

type EnrollmentResult struct {
	EnrollmentID uint
	CourseTitle  string
	Price        float64
	PaymentID    *uint
}

type EnrollmentService struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewEnrollmentService(db *gorm.DB, log *utils.Logger) *EnrollmentService {
	return &EnrollmentService{db: db, log: log}
}

// Enroll adds the student to the course, recording a simulated payment when
// the course has a price. Enrollment and payment commit together or not at
// all.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID uint, payment *PaymentInfo) (*EnrollmentResult, error) {
	db := s.db.WithContext(ctx)

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		if utils.IsNotFound(err) {
			return nil, utils.NotFoundErr("Course not found")
		}
		return nil, utils.InternalErr(err)
	}

	var student models.User
	if err := db.Select("id").First(&student, studentID).Error; err != nil {
		if utils.IsNotFound(err) {
			return nil, utils.NotFoundErr("Student not found")
		}
		return nil, utils.InternalErr(err)
	}

	price := coursePrice(course.Price)

	var existing int64
	if err := db.Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&existing).Error; err != nil {
		return nil, utils.InternalErr(err)
	}
	if existing > 0 {
		return nil, utils.ConflictErr("Already enrolled in this course")
	}

	var name, last4 string
	if price > 0 {
		if payment == nil {
			return nil, utils.ValidationErr("Payment details are required for paid courses")
		}
		name = strings.TrimSpace(payment.Name)
		if name == "" {
			return nil, utils.ValidationErr("Cardholder name is required")
		}
		var ok bool
		if last4, ok = cardLast4(payment.CardNumber); !ok {
			return nil, utils.ValidationErr("Invalid card number")
		}
	}

	result := &EnrollmentResult{CourseTitle: course.Title, Price: price}

	err := db.Transaction(func(tx *gorm.DB) error {
		enrollment := models.Enrollment{StudentID: studentID, CourseID: courseID}
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}
		result.EnrollmentID = enrollment.ID

		if price <= 0 {
			return nil
		}
		record := models.Payment{
			StudentID:         studentID,
			CourseID:          courseID,
			Amount:            price,
			Currency:          PaymentCurrency,
			Status:            PaymentStatusPaid,
			Provider:          PaymentProvider,
			ProviderReference: "sim_" + uuid.NewString(),
			CardLast4:         last4,
			CardholderName:    name,
			PaidAt:            time.Now(),
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		result.PaymentID = &record.ID
		return nil
	})
	if err != nil {
		// The unique index catches enrollments that raced past the count above.
		if utils.IsDuplicateKey(err) {
			return nil, utils.ConflictErr("Already enrolled in this course")
		}
		return nil, utils.InternalErr(err)
	}

	s.log.Info("Student enrolled", "student_id", studentID, "course_id", courseID, "price", price)
	return result, nil
}

func coursePrice(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0
	}
	return p
}

// cardLast4 strips whitespace and returns the last four characters. ok is
// false unless there are at least four and all of them are digits.
func cardLast4(number string) (last4 string, ok bool) {
	digits := []rune(strings.Join(strings.Fields(number), ""))
	if len(digits) < 4 {
		return string(digits), false
	}
	tail := digits[len(digits)-4:]
	for _, r := range tail {
		if r < '0' || r > '9' {
			return string(tail), false
		}
	}
	return string(tail), true
}
