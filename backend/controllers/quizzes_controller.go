package controllers

import (
	"math"

	"studybuddy/backend/config"
	"studybuddy/backend/models"
	"studybuddy/backend/services"
	"studybuddy/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type QuizzesController struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Quizzes *services.QuizService
}

func NewQuizzesController(db *gorm.DB, cfg *config.Config) *QuizzesController {
	return &QuizzesController{DB: db, Cfg: cfg, Quizzes: services.NewQuizService(db)}
}

type submitScoreInput struct {
	StudentID uint     `json:"studentId"`
	Score     *float64 `json:"score"`
}

// CreateQuiz godoc
// @Summary Create a quiz with its questions
// @Description Quiz and questions are inserted atomically
// @Tags quizzes
// @Accept json
// @Produce json
// @Success 201 {object} models.Quiz
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /courses/{id}/quizzes [post]
func (qc *QuizzesController) CreateQuiz(c *fiber.Ctx) error {
	courseID, err := paramID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	var input services.QuizInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var count int64
	if err := qc.DB.Model(&models.Course{}).Where("id = ?", courseID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return utils.NotFound(c, "Course not found")
	}

	quiz, err := qc.Quizzes.Create(c.UserContext(), nil, courseID, input)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Created(c, quiz)
}

func (qc *QuizzesController) DeleteQuiz(c *fiber.Ctx) error {
	courseID, err := paramID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	quizID, ok, err := queryID(c, "quizId")
	if err != nil {
		return utils.Fail(c, err)
	}
	if !ok {
		return utils.BadRequest(c, "quizId query param required")
	}

	res := qc.DB.Where("id = ? AND course_id = ?", quizID, courseID).Delete(&models.Quiz{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.NotFound(c, "Quiz not found")
	}
	return utils.Message(c, fiber.StatusOK, "Quiz deleted")
}

func (qc *QuizzesController) GetQuiz(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	quiz, err := qc.Quizzes.Get(c.UserContext(), id)
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(quiz)
}

// SubmitScore appends an attempt; earlier attempts are kept.
func (qc *QuizzesController) SubmitScore(c *fiber.Ctx) error {
	quizID, err := paramID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	var input submitScoreInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.StudentID == 0 || input.Score == nil || math.IsNaN(*input.Score) {
		return utils.BadRequest(c, "studentId and score are required")
	}

	var count int64
	if err := qc.DB.Model(&models.Quiz{}).Where("id = ?", quizID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return utils.NotFound(c, "Quiz not found")
	}

	score := models.QuizScore{StudentID: input.StudentID, QuizID: quizID, Score: *input.Score}
	if err := qc.DB.Create(&score).Error; err != nil {
		return err
	}
	return utils.Message(c, fiber.StatusCreated, "Score submitted")
}
