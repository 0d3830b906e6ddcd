package services

import (
	"context"

	"studybuddy/backend/models"
	"studybuddy/backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Progress is how many of a course's lessons a student has finished.
type Progress struct {
	Completed int64 `json:"completed"`
	Total     int64 `json:"total"`
}

func (p Progress) Done() bool {
	return p.Total > 0 && p.Completed >= p.Total
}

type ProgressService struct {
	db *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{db: db}
}

// CompleteLesson records the lesson as finished. Marking it again is a no-op.
func (s *ProgressService) CompleteLesson(ctx context.Context, studentID, courseID, lessonID uint) error {
	db := s.db.WithContext(ctx)

	var lesson models.Lesson
	if err := db.Select("id").Where("id = ? AND course_id = ?", lessonID, courseID).First(&lesson).Error; err != nil {
		if utils.IsNotFound(err) {
			return utils.NotFoundErr("Lesson not found")
		}
		return utils.InternalErr(err)
	}

	mark := models.CompletedLesson{StudentID: studentID, LessonID: lessonID}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&mark).Error; err != nil {
		return utils.InternalErr(err)
	}
	return nil
}

// CourseProgress counts lessons in the course and those the student completed.
// tx may be nil.
func (s *ProgressService) CourseProgress(ctx context.Context, tx *gorm.DB, studentID, courseID uint) (Progress, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	transaction = transaction.WithContext(ctx)

	var p Progress
	if err := transaction.Model(&models.Lesson{}).Where("course_id = ?", courseID).Count(&p.Total).Error; err != nil {
		return p, err
	}
	if err := transaction.Model(&models.CompletedLesson{}).
		Joins("JOIN lessons ON lessons.id = completed_lessons.lesson_id").
		Where("completed_lessons.student_id = ? AND lessons.course_id = ?", studentID, courseID).
		Count(&p.Completed).Error; err != nil {
		return p, err
	}
	return p, nil
}
