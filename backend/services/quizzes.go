package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"studybuddy/backend/models"
	"studybuddy/backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionInput struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correctAnswer"`
}

type QuizInput struct {
	Title     string          `json:"title" validate:"required"`
	Questions []QuestionInput `json:"questions"`
}

// ValidateQuestions checks every question and names the first bad one by
// its 1-based position.
func ValidateQuestions(questions []QuestionInput) error {
	for i, q := range questions {
		n := i + 1
		if strings.TrimSpace(q.Question) == "" {
			return utils.ValidationErr(fmt.Sprintf("Question %d is missing text", n))
		}
		if len(q.Options) < 2 || hasBlank(q.Options) {
			return utils.ValidationErr(fmt.Sprintf("Question %d must include at least 2 non-empty choices", n))
		}
		if q.CorrectAnswer == nil || *q.CorrectAnswer < 0 || *q.CorrectAnswer >= len(q.Options) {
			return utils.ValidationErr(fmt.Sprintf("Question %d has invalid correctAnswer", n))
		}
	}
	return nil
}

func hasBlank(options []string) bool {
	for _, o := range options {
		if strings.TrimSpace(o) == "" {
			return true
		}
	}
	return false
}

// BuildQuiz turns validated input into a quiz ready for insert.
func BuildQuiz(courseID uint, in QuizInput) (models.Quiz, error) {
	quiz := models.Quiz{CourseID: courseID, Title: strings.TrimSpace(in.Title)}
	for i, q := range in.Questions {
		options := make([]string, len(q.Options))
		for j, o := range q.Options {
			options[j] = strings.TrimSpace(o)
		}
		raw, err := json.Marshal(options)
		if err != nil {
			return quiz, err
		}
		quiz.Questions = append(quiz.Questions, models.QuizQuestion{
			Question:      strings.TrimSpace(q.Question),
			Options:       datatypes.JSON(raw),
			CorrectAnswer: *q.CorrectAnswer,
			SortOrder:     i + 1,
		})
	}
	return quiz, nil
}

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

// Create validates the input and inserts the quiz with its questions in one
// transaction. tx may be nil, in which case a new transaction is opened.
func (s *QuizService) Create(ctx context.Context, tx *gorm.DB, courseID uint, in QuizInput) (*models.Quiz, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, utils.ValidationErr("title is required")
	}
	if err := ValidateQuestions(in.Questions); err != nil {
		return nil, err
	}
	quiz, err := BuildQuiz(courseID, in)
	if err != nil {
		return nil, utils.InternalErr(err)
	}

	insert := func(tx *gorm.DB) error {
		return tx.Create(&quiz).Error
	}
	if tx != nil {
		err = insert(tx.WithContext(ctx))
	} else {
		err = s.db.WithContext(ctx).Transaction(insert)
	}
	if err != nil {
		return nil, utils.InternalErr(err)
	}
	if quiz.Questions == nil {
		quiz.Questions = []models.QuizQuestion{}
	}
	return &quiz, nil
}

// Get loads a quiz with its course title and ordered questions.
func (s *QuizService) Get(ctx context.Context, quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.WithContext(ctx).
		Select("quizzes.*, courses.title AS course_title").
		Joins("JOIN courses ON courses.id = quizzes.course_id").
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order, id") }).
		Where("quizzes.id = ?", quizID).
		First(&quiz).Error
	if err != nil {
		if utils.IsNotFound(err) {
			return nil, utils.NotFoundErr("Quiz not found")
		}
		return nil, utils.InternalErr(err)
	}
	return &quiz, nil
}
