package routes

import (
	"fmt"
	"testing"

	"studybuddy/backend/models"
	"studybuddy/backend/testutil"
	"studybuddy/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestions(t *testing.T) {
	app, db := setup(t)
	ivy := testutil.CreateUser(t, db, "Ivy", "ivy@example.com", models.RoleInstructor)
	student := testutil.CreateUser(t, db, "Sam", "sam@example.com", models.RoleStudent)
	course := testutil.CreateCourse(t, db, ivy.ID, "Go", 0, 1)

	resp := doJSON(t, app, fiber.MethodPost, "/api/questions", map[string]interface{}{"studentId": student.ID})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "studentId, courseId, and question are required", decodeMap(t, resp)["error"])

	resp = doJSON(t, app, fiber.MethodPost, "/api/questions", map[string]interface{}{
		"studentId": student.ID, "courseId": course.ID, "question": "What is a goroutine?",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var question models.Question
	decode(t, resp, &question)
	assert.Equal(t, models.QuestionPending, question.Status)
	assert.Nil(t, question.Answer)

	resp = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/questions?courseId=%d", course.ID), nil)
	var questions []models.Question
	decode(t, resp, &questions)
	require.Len(t, questions, 1)
	assert.Equal(t, "Sam", questions[0].StudentName)
	assert.Equal(t, "Go", questions[0].CourseName)

	resp = doJSON(t, app, fiber.MethodGet, "/api/questions?studentId=999", nil)
	decode(t, resp, &questions)
	assert.Empty(t, questions)

	answerPath := fmt.Sprintf("/api/questions/%d/answer", question.ID)
	resp = doJSON(t, app, fiber.MethodPut, answerPath, map[string]string{"answer": " "})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Answer is required", decodeMap(t, resp)["error"])

	resp = doJSON(t, app, fiber.MethodPut, answerPath, map[string]string{"answer": "A lightweight thread."})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &question)
	assert.Equal(t, models.QuestionAnswered, question.Status)
	require.NotNil(t, question.Answer)
	assert.Equal(t, "A lightweight thread.", *question.Answer)

	resp = doJSON(t, app, fiber.MethodPut, "/api/questions/999/answer", map[string]string{"answer": "x"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestReports(t *testing.T) {
	app, db := setup(t)
	user := testutil.CreateUser(t, db, "Sam", "sam@example.com", models.RoleStudent)

	resp := doJSON(t, app, fiber.MethodPost, "/api/reports", map[string]interface{}{"type": "bug"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "type, userId, and subject are required", decodeMap(t, resp)["error"])

	resp = doJSON(t, app, fiber.MethodPost, "/api/reports", map[string]interface{}{
		"type": "bug", "userId": user.ID, "subject": "Video does not load",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var report models.Report
	decode(t, resp, &report)
	assert.Equal(t, models.ReportPending, report.Status)

	resp = doJSON(t, app, fiber.MethodPut, "/api/reports", map[string]interface{}{"id": report.ID, "status": "closed"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPut, "/api/reports", map[string]interface{}{"id": 999, "status": "resolved"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPut, "/api/reports", map[string]interface{}{"id": report.ID, "status": "resolved"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &report)
	assert.Equal(t, models.ReportResolved, report.Status)
	assert.Equal(t, "Sam", report.UserName)

	resp = doJSON(t, app, fiber.MethodGet, "/api/reports?status=pending", nil)
	var reports []models.Report
	decode(t, resp, &reports)
	assert.Empty(t, reports)

	resp = doJSON(t, app, fiber.MethodGet, "/api/reports", nil)
	decode(t, resp, &reports)
	require.Len(t, reports, 1)
}

func TestStats(t *testing.T) {
	app, db := setup(t)

	resp := doJSON(t, app, fiber.MethodGet, "/api/stats", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var empty models.PlatformStats
	decode(t, resp, &empty)
	assert.Equal(t, models.PlatformStats{}, empty)

	ivy := testutil.CreateUser(t, db, "Ivy", "ivy@example.com", models.RoleInstructor)
	sam := testutil.CreateUser(t, db, "Sam", "sam@example.com", models.RoleStudent)
	kim := testutil.CreateUser(t, db, "Kim", "kim@example.com", models.RoleStudent)
	paid := testutil.CreateCourse(t, db, ivy.ID, "Paid", 20, 2)
	free := testutil.CreateCourse(t, db, ivy.ID, "Free", 0, 2)
	for _, e := range []models.Enrollment{
		{StudentID: sam.ID, CourseID: paid.ID},
		{StudentID: kim.ID, CourseID: paid.ID},
		{StudentID: sam.ID, CourseID: free.ID},
	} {
		require.NoError(t, db.Create(&e).Error)
	}
	// 3 of 6 expected lessons done.
	for _, l := range []models.CompletedLesson{
		{StudentID: sam.ID, LessonID: paid.Lessons[0].ID},
		{StudentID: sam.ID, LessonID: paid.Lessons[1].ID},
		{StudentID: kim.ID, LessonID: paid.Lessons[0].ID},
	} {
		require.NoError(t, db.Create(&l).Error)
	}

	resp = doJSON(t, app, fiber.MethodGet, "/api/stats", nil)
	var stats models.PlatformStats
	decode(t, resp, &stats)
	assert.Equal(t, models.PlatformStats{
		TotalUsers:       3,
		TotalCourses:     2,
		TotalEnrollments: 3,
		ActiveUsers:      2,
		Revenue:          40,
		CompletionRate:   50,
	}, stats)
}

func TestUsersAndCategories(t *testing.T) {
	app, db := setup(t)
	require.NoError(t, utils.Seed(db, utils.NopLogger(), false))
	testutil.CreateUser(t, db, "Sam", "sam@example.com", models.RoleStudent)

	resp := doJSON(t, app, fiber.MethodGet, "/api/users", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var users []map[string]interface{}
	decode(t, resp, &users)
	require.Len(t, users, 1)
	assert.Equal(t, "sam@example.com", users[0]["email"])
	assert.NotContains(t, users[0], "passwordHash")
	assert.NotContains(t, users[0], "PasswordHash")

	resp = doJSON(t, app, fiber.MethodGet, "/api/categories", nil)
	var categories []models.Category
	decode(t, resp, &categories)
	assert.NotEmpty(t, categories)
	assert.Equal(t, "Programming", categories[0].Name)
}

func TestHealth(t *testing.T) {
	app, _ := setup(t)
	resp := doJSON(t, app, fiber.MethodGet, "/health", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
