package controllers

import (
	"strings"

	"studybuddy/backend/config"
	"studybuddy/backend/models"
	"studybuddy/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// QuestionsController is the student Q&A board.
type QuestionsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewQuestionsController(db *gorm.DB, cfg *config.Config) *QuestionsController {
	return &QuestionsController{DB: db, Cfg: cfg}
}

type askQuestionInput struct {
	StudentID uint   `json:"studentId"`
	CourseID  uint   `json:"courseId"`
	Question  string `json:"question"`
}

type answerInput struct {
	Answer string `json:"answer"`
}

func questionsWithNames(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Question{}).
		Select("questions.*, users.name AS student_name, courses.title AS course_name").
		Joins("LEFT JOIN users ON users.id = questions.student_id").
		Joins("LEFT JOIN courses ON courses.id = questions.course_id")
}

// GetQuestions supports ?studentId= and ?courseId=, newest first.
func (qc *QuestionsController) GetQuestions(c *fiber.Ctx) error {
	query := questionsWithNames(qc.DB)

	studentID, ok, err := queryID(c, "studentId")
	if err != nil {
		return utils.Fail(c, err)
	}
	if ok {
		query = query.Where("questions.student_id = ?", studentID)
	}
	courseID, ok, err := queryID(c, "courseId")
	if err != nil {
		return utils.Fail(c, err)
	}
	if ok {
		query = query.Where("questions.course_id = ?", courseID)
	}

	questions := []models.Question{}
	if err := query.Order("questions.created_at DESC, questions.id DESC").Find(&questions).Error; err != nil {
		return err
	}
	return c.JSON(questions)
}

func (qc *QuestionsController) AskQuestion(c *fiber.Ctx) error {
	var input askQuestionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	text := strings.TrimSpace(input.Question)
	if input.StudentID == 0 || input.CourseID == 0 || text == "" {
		return utils.BadRequest(c, "studentId, courseId, and question are required")
	}

	courseID := input.CourseID
	question := models.Question{
		StudentID: input.StudentID,
		CourseID:  &courseID,
		Question:  text,
		Status:    models.QuestionPending,
	}
	if err := qc.DB.Create(&question).Error; err != nil {
		return err
	}
	return utils.Created(c, question)
}

// AnswerQuestion stores the instructor's reply and marks the question answered.
func (qc *QuestionsController) AnswerQuestion(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	var input answerInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	answer := strings.TrimSpace(input.Answer)
	if answer == "" {
		return utils.BadRequest(c, "Answer is required")
	}

	res := qc.DB.Model(&models.Question{}).Where("id = ?", id).
		Updates(map[string]interface{}{"answer": answer, "status": models.QuestionAnswered})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.NotFound(c, "Question not found")
	}

	var question models.Question
	if err := questionsWithNames(qc.DB).Where("questions.id = ?", id).First(&question).Error; err != nil {
		return err
	}
	return c.JSON(question)
}
