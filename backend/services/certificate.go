package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"studybuddy/backend/models"
	"studybuddy/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CertificateService struct {
	db       *gorm.DB
	progress *ProgressService
	log      *utils.Logger
}

func NewCertificateService(db *gorm.DB, progress *ProgressService, log *utils.Logger) *CertificateService {
	return &CertificateService{db: db, progress: progress, log: log}
}

// Issue returns the student's certificate for the course, minting it once
// every lesson is completed. An existing certificate comes back with
// AlreadyIssued set.
func (s *CertificateService) Issue(ctx context.Context, studentID, courseID uint) (*models.Certificate, error) {
	db := s.db.WithContext(ctx)

	existing, err := s.find(db, studentID, courseID)
	if err != nil {
		return nil, utils.InternalErr(err)
	}
	if existing != nil {
		existing.AlreadyIssued = true
		return existing, nil
	}

	var enrolled int64
	if err := db.Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&enrolled).Error; err != nil {
		return nil, utils.InternalErr(err)
	}
	if enrolled == 0 {
		return nil, utils.ForbiddenErr("Student is not enrolled in this course")
	}

	progress, err := s.progress.CourseProgress(ctx, nil, studentID, courseID)
	if err != nil {
		return nil, utils.InternalErr(err)
	}
	if progress.Total == 0 {
		return nil, utils.ValidationErr("Course has no lessons yet")
	}
	if !progress.Done() {
		return nil, utils.ValidationErr("Course is not completed yet").
			WithDetails(fiber.Map{"progress": progress})
	}

	now := time.Now()
	cert := models.Certificate{
		StudentID:       studentID,
		CourseID:        courseID,
		CertificateCode: CertificateCode(courseID, studentID, now),
		IssuedAt:        now,
	}
	if err := db.Create(&cert).Error; err != nil {
		if !utils.IsDuplicateKey(err) {
			return nil, utils.InternalErr(err)
		}
		// A concurrent request issued it first.
		existing, ferr := s.find(db, studentID, courseID)
		if ferr != nil || existing == nil {
			return nil, utils.InternalErr(err)
		}
		existing.AlreadyIssued = true
		return existing, nil
	}

	if err := db.Model(&models.Course{}).Select("title").Where("id = ?", courseID).Scan(&cert.CourseTitle).Error; err != nil {
		return nil, utils.InternalErr(err)
	}
	s.log.Info("Certificate issued", "student_id", studentID, "course_id", courseID, "code", cert.CertificateCode)
	return &cert, nil
}

// ListForStudent returns the student's certificates, newest first.
func (s *CertificateService) ListForStudent(ctx context.Context, studentID uint) ([]models.Certificate, error) {
	certs := []models.Certificate{}
	err := s.db.WithContext(ctx).
		Select("certificates.*, courses.title AS course_title").
		Joins("JOIN courses ON courses.id = certificates.course_id").
		Where("certificates.student_id = ?", studentID).
		Order("certificates.issued_at DESC, certificates.id DESC").
		Find(&certs).Error
	return certs, err
}

func (s *CertificateService) find(db *gorm.DB, studentID, courseID uint) (*models.Certificate, error) {
	var certs []models.Certificate
	err := db.Select("certificates.*, courses.title AS course_title").
		Joins("JOIN courses ON courses.id = certificates.course_id").
		Where("certificates.student_id = ? AND certificates.course_id = ?", studentID, courseID).
		Limit(1).
		Find(&certs).Error
	if err != nil || len(certs) == 0 {
		return nil, err
	}
	return &certs[0], nil
}

// CertificateCode builds SB-<course>-<student>-<BASE36 millis>.
func CertificateCode(courseID, studentID uint, at time.Time) string {
	stamp := strings.ToUpper(strconv.FormatInt(at.UnixMilli(), 36))
	return fmt.Sprintf("SB-%d-%d-%s", courseID, studentID, stamp)
}
