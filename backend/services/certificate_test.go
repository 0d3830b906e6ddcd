package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"studybuddy/backend/models"
	"studybuddy/backend/testutil"
	"studybuddy/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCertificate(t *testing.T, lessons int) (*gorm.DB, *CertificateService, *ProgressService, models.User, models.Course) {
	t.Helper()
	db := testutil.NewDB(t)
	instructor := testutil.CreateUser(t, db, "Ivy", "ivy@example.com", models.RoleInstructor)
	student := testutil.CreateUser(t, db, "Sam", "sam@example.com", models.RoleStudent)
	course := testutil.CreateCourse(t, db, instructor.ID, "Databases", 49.99, lessons)
	progress := NewProgressService(db)
	return db, NewCertificateService(db, progress, utils.NopLogger()), progress, student, course
}

func TestCertificateLifecycle(t *testing.T) {
	db, certs, progress, student, course := setupCertificate(t, 2)
	ctx := context.Background()

	_, err := NewEnrollmentService(db, utils.NopLogger()).Enroll(ctx, student.ID, course.ID, validCard())
	require.NoError(t, err)

	require.NoError(t, progress.CompleteLesson(ctx, student.ID, course.ID, course.Lessons[0].ID))

	_, err = certs.Issue(ctx, student.ID, course.ID)
	apiErr, ok := utils.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, "Course is not completed yet", apiErr.Message)
	assert.Equal(t, Progress{Completed: 1, Total: 2}, apiErr.Details["progress"])

	require.NoError(t, progress.CompleteLesson(ctx, student.ID, course.ID, course.Lessons[1].ID))

	first, err := certs.Issue(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, first.AlreadyIssued)
	assert.Equal(t, "Databases", first.CourseTitle)
	assert.Regexp(t, regexp.MustCompile(`^SB-\d+-\d+-[0-9A-Z]+$`), first.CertificateCode)

	second, err := certs.Issue(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, second.AlreadyIssued)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CertificateCode, second.CertificateCode)
	assert.Equal(t, "Databases", second.CourseTitle)

	var count int64
	require.NoError(t, db.Model(&models.Certificate{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCertificateRequiresEnrollment(t *testing.T) {
	_, certs, _, student, course := setupCertificate(t, 1)

	_, err := certs.Issue(context.Background(), student.ID, course.ID)
	apiErr, ok := utils.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 403, apiErr.Status)
}

func TestCertificateCourseWithoutLessons(t *testing.T) {
	db, certs, _, student, course := setupCertificate(t, 0)
	require.NoError(t, db.Create(&models.Enrollment{StudentID: student.ID, CourseID: course.ID}).Error)

	_, err := certs.Issue(context.Background(), student.ID, course.ID)
	apiErr, ok := utils.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, "Course has no lessons yet", apiErr.Message)
}

func TestCompleteLessonIsIdempotent(t *testing.T) {
	db, _, progress, student, course := setupCertificate(t, 1)
	ctx := context.Background()

	lessonID := course.Lessons[0].ID
	require.NoError(t, progress.CompleteLesson(ctx, student.ID, course.ID, lessonID))
	require.NoError(t, progress.CompleteLesson(ctx, student.ID, course.ID, lessonID))

	var count int64
	require.NoError(t, db.Model(&models.CompletedLesson{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	err := progress.CompleteLesson(ctx, student.ID, course.ID+1, lessonID)
	apiErr, ok := utils.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 404, apiErr.Status)
}

func TestCertificateCode(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	assert.Equal(t, "SB-3-7-LOYW3V28", CertificateCode(3, 7, at))
}
