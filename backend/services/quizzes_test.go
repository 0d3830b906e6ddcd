package services

import (
	"context"
	"testing"

	"studybuddy/backend/models"
	"studybuddy/backend/testutil"
	"studybuddy/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestValidateQuestions(t *testing.T) {
	tests := []struct {
		name      string
		questions []QuestionInput
		want      string
	}{
		{"ok", []QuestionInput{{Question: "Q", Options: []string{"a", "b"}, CorrectAnswer: intPtr(1)}}, ""},
		{"missing text", []QuestionInput{{Question: " ", Options: []string{"a", "b"}, CorrectAnswer: intPtr(0)}}, "Question 1 is missing text"},
		{"one option", []QuestionInput{
			{Question: "Q1", Options: []string{"a", "b"}, CorrectAnswer: intPtr(0)},
			{Question: "Q2", Options: []string{"a"}, CorrectAnswer: intPtr(0)},
		}, "Question 2 must include at least 2 non-empty choices"},
		{"blank option", []QuestionInput{{Question: "Q", Options: []string{"a", ""}, CorrectAnswer: intPtr(0)}}, "Question 1 must include at least 2 non-empty choices"},
		{"answer out of range", []QuestionInput{{Question: "Q", Options: []string{"a", "b"}, CorrectAnswer: intPtr(2)}}, "Question 1 has invalid correctAnswer"},
		{"answer missing", []QuestionInput{{Question: "Q", Options: []string{"a", "b"}}}, "Question 1 has invalid correctAnswer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuestions(tt.questions)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			apiErr, ok := utils.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, 400, apiErr.Status)
			assert.Equal(t, tt.want, apiErr.Message)
		})
	}
}

func TestQuizCreateAndGet(t *testing.T) {
	db := testutil.NewDB(t)
	instructor := testutil.CreateUser(t, db, "Ivy", "ivy@example.com", models.RoleInstructor)
	course := testutil.CreateCourse(t, db, instructor.ID, "Go", 0, 1)
	svc := NewQuizService(db)

	quiz, err := svc.Create(context.Background(), nil, course.ID, QuizInput{
		Title: "Basics",
		Questions: []QuestionInput{
			{Question: "First?", Options: []string{" yes ", "no"}, CorrectAnswer: intPtr(0)},
			{Question: "Second?", Options: []string{"a", "b", "c"}, CorrectAnswer: intPtr(2)},
		},
	})
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 2)

	got, err := svc.Get(context.Background(), quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, "Basics", got.Title)
	assert.Equal(t, "Go", got.CourseTitle)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, "First?", got.Questions[0].Question)
	assert.JSONEq(t, `["yes","no"]`, string(got.Questions[0].Options))
	assert.Equal(t, 2, got.Questions[1].CorrectAnswer)

	_, err = svc.Get(context.Background(), quiz.ID+100)
	apiErr, ok := utils.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 404, apiErr.Status)
}

func TestQuizCreateInvalidWritesNothing(t *testing.T) {
	db := testutil.NewDB(t)
	instructor := testutil.CreateUser(t, db, "Ivy", "ivy@example.com", models.RoleInstructor)
	course := testutil.CreateCourse(t, db, instructor.ID, "Go", 0, 1)

	_, err := NewQuizService(db).Create(context.Background(), nil, course.ID, QuizInput{
		Title:     "Bad",
		Questions: []QuestionInput{{Question: "Q", Options: []string{"only"}, CorrectAnswer: intPtr(0)}},
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Quiz{}).Count(&count).Error)
	assert.Zero(t, count)
}
