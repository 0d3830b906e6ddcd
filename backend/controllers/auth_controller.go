package controllers

import (
	"errors"
	"strings"

	"studybuddy/backend/config"
	"studybuddy/backend/models"
	"studybuddy/backend/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB  *gorm.DB
	Cfg *config.Config
	Log *utils.Logger
}

func NewAuthController(db *gorm.DB, cfg *config.Config, log *utils.Logger) *AuthController {
	return &AuthController{DB: db, Cfg: cfg, Log: log}
}

type registerInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=student instructor admin"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input registerInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	// Normalize first so padded or mixed-case addresses pass the email tag.
	input.Name = strings.TrimSpace(input.Name)
	input.Email = models.NormalizeEmail(input.Email)
	if err := utils.Validate(&input); err != nil {
		return utils.BadRequest(c, utils.ValidationMessage(err))
	}

	email := input.Email
	var existing int64
	if err := ac.DB.Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return utils.Conflict(c, "Email already registered")
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         input.Role,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			return utils.Conflict(c, "Email already registered")
		}
		return err
	}

	ac.Log.Info("User registered", "user_id", user.ID, "role", user.Role)
	profile, err := ac.profile(&user)
	if err != nil {
		return err
	}
	return utils.Created(c, profile)
}

// Login godoc
// @Summary User login
// @Description Verifies the password and returns the role-specific profile
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input loginInput
	if err := parseBody(c, &input); err != nil {
		return utils.Fail(c, err)
	}

	var user models.User
	if err := ac.DB.Where("email = ?", models.NormalizeEmail(input.Email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "Invalid credentials")
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return utils.Unauthorized(c, "Invalid credentials")
	}

	// The requested role is only a hint from the login form; the account's role wins.
	if input.Role != "" && input.Role != user.Role {
		ac.Log.Debug("Login role mismatch", "user_id", user.ID, "requested", input.Role, "stored", user.Role)
	}

	profile, err := ac.profile(&user)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// profile builds the login/register payload for the user's role.
func (ac *AuthController) profile(user *models.User) (fiber.Map, error) {
	out := fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}

	switch user.Role {
	case models.RoleStudent:
		enrolled := []uint{}
		if err := ac.DB.Model(&models.Enrollment{}).Where("student_id = ?", user.ID).
			Order("course_id").Pluck("course_id", &enrolled).Error; err != nil {
			return nil, err
		}
		completed := []uint{}
		if err := ac.DB.Model(&models.CompletedLesson{}).Where("student_id = ?", user.ID).
			Order("lesson_id").Pluck("lesson_id", &completed).Error; err != nil {
			return nil, err
		}
		scores := []models.QuizScore{}
		if err := ac.DB.Where("student_id = ?", user.ID).Order("taken_at, id").Find(&scores).Error; err != nil {
			return nil, err
		}
		quizScores := make([]fiber.Map, 0, len(scores))
		for _, s := range scores {
			quizScores = append(quizScores, fiber.Map{"quizId": s.QuizID, "score": s.Score, "date": s.TakenAt})
		}
		certificates := []models.Certificate{}
		if err := ac.DB.Select("certificates.*, courses.title AS course_title").
			Joins("JOIN courses ON courses.id = certificates.course_id").
			Where("certificates.student_id = ?", user.ID).
			Order("certificates.issued_at DESC").
			Find(&certificates).Error; err != nil {
			return nil, err
		}

		out["enrolledCourses"] = enrolled
		out["completedLessons"] = completed
		out["quizScores"] = quizScores
		out["certificates"] = certificates
	case models.RoleInstructor:
		courses := []uint{}
		if err := ac.DB.Model(&models.Course{}).Where("instructor_id = ?", user.ID).
			Order("id").Pluck("id", &courses).Error; err != nil {
			return nil, err
		}
		out["courses"] = courses
	}
	return out, nil
}
