package routes

import (
	"testing"

	"studybuddy/backend/models"
	"studybuddy/backend/testutil"
	"studybuddy/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	app, _ := setup(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/register", map[string]string{
		"name":     "New User",
		"email":    "  NewUser@Example.com ",
		"password": "password123",
		"role":     "student",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	result := decodeMap(t, resp)
	assert.Equal(t, "newuser@example.com", result["email"])
	assert.Equal(t, "student", result["role"])
	assert.Equal(t, []interface{}{}, result["enrolledCourses"])
	assert.Equal(t, []interface{}{}, result["certificates"])
	assert.NotContains(t, result, "passwordHash")
}

func TestRegisterErrors(t *testing.T) {
	app, db := setup(t)
	testutil.CreateUser(t, db, "Existing", "taken@example.com", models.RoleStudent)

	tests := []struct {
		name   string
		body   map[string]string
		status int
		error  string
	}{
		{"missing name", map[string]string{"email": "a@example.com", "password": "x", "role": "student"}, fiber.StatusBadRequest, "name is required"},
		{"blank name", map[string]string{"name": "   ", "email": "a@example.com", "password": "x", "role": "student"}, fiber.StatusBadRequest, "name is required"},
		{"bad email", map[string]string{"name": "A", "email": "  not-an-email ", "password": "x", "role": "student"}, fiber.StatusBadRequest, "email must be a valid email"},
		{"bad role", map[string]string{"name": "A", "email": "a@example.com", "password": "x", "role": "owner"}, fiber.StatusBadRequest, "role must be one of student instructor admin"},
		{"duplicate email", map[string]string{"name": "A", "email": "TAKEN@example.com", "password": "x", "role": "student"}, fiber.StatusConflict, "Email already registered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, fiber.MethodPost, "/api/auth/register", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.error, decodeMap(t, resp)["error"])
		})
	}
}

func TestLogin(t *testing.T) {
	app, db := setup(t)
	student := testutil.CreateUser(t, db, "Sam", "sam@example.com", models.RoleStudent)
	instructor := testutil.CreateUser(t, db, "Ivy", "ivy@example.com", models.RoleInstructor)
	course := testutil.CreateCourse(t, db, instructor.ID, "Go", 0, 1)
	require.NoError(t, db.Create(&models.Enrollment{StudentID: student.ID, CourseID: course.ID}).Error)

	t.Run("student profile", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", map[string]string{
			"email":    "SAM@example.com",
			"password": "password123",
			"role":     "student",
		})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		result := decodeMap(t, resp)
		assert.Equal(t, "Sam", result["name"])
		assert.Equal(t, []interface{}{float64(course.ID)}, result["enrolledCourses"])
		assert.Equal(t, []interface{}{}, result["completedLessons"])
		assert.Equal(t, []interface{}{}, result["quizScores"])
	})

	t.Run("stored role wins", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", map[string]string{
			"email":    "ivy@example.com",
			"password": "password123",
			"role":     "student",
		})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		result := decodeMap(t, resp)
		assert.Equal(t, "instructor", result["role"])
		assert.Equal(t, []interface{}{float64(course.ID)}, result["courses"])
		assert.NotContains(t, result, "enrolledCourses")
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", map[string]string{
			"email":    "sam@example.com",
			"password": "nope",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid credentials", decodeMap(t, resp)["error"])
	})

	t.Run("missing fields", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", map[string]string{"email": "sam@example.com"})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "password is required", decodeMap(t, resp)["error"])
	})
}

func TestAuthRateLimit(t *testing.T) {
	db := testutil.NewDB(t)
	cfg := testutil.Config()
	cfg.AuthRateLimit = 1
	app := NewApp(db, cfg, utils.NopLogger())

	body := map[string]string{"email": "nobody@example.com", "password": "x"}
	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", body)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/auth/login", body)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "Too many requests", decodeMap(t, resp)["error"])
}
