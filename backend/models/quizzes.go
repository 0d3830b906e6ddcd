package models

import (
	"time"

	"gorm.io/datatypes"
)

type Quiz struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CourseID  uint           `gorm:"not null;index" json:"courseId"`
	Title     string         `gorm:"not null" json:"title"`
	CreatedAt time.Time      `json:"-"`
	Questions []QuizQuestion `gorm:"constraint:OnDelete:CASCADE" json:"questions"`

	CourseTitle string `gorm:"->;-:migration" json:"courseTitle,omitempty"`
}

type QuizQuestion struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	QuizID        uint           `gorm:"not null;index" json:"-"`
	Question      string         `gorm:"not null" json:"question"`
	Options       datatypes.JSON `gorm:"not null" json:"options"` // JSON array of strings
	CorrectAnswer int            `json:"correctAnswer"`
	SortOrder     int            `gorm:"not null;default:0" json:"-"`
}
