package models

import "time"

const (
	QuestionPending  = "pending"
	QuestionAnswered = "answered"

	ReportPending  = "pending"
	ReportResolved = "resolved"
)

// Question is a student's Q&A entry; Answer stays nil until an instructor replies.
type Question struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"not null;index" json:"studentId"`
	CourseID  *uint     `gorm:"index" json:"courseId"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    *string   `gorm:"type:text" json:"answer"`
	Status    string    `gorm:"size:20;not null;default:pending" json:"status"`
	CreatedAt time.Time `json:"date"`

	StudentName string `gorm:"->;-:migration" json:"studentName,omitempty"`
	CourseName  string `gorm:"->;-:migration" json:"courseName,omitempty"`
}

type Report struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Type        string    `gorm:"size:50;not null" json:"type"`
	UserID      uint      `gorm:"not null;index" json:"userId"`
	Subject     string    `gorm:"not null" json:"subject"`
	Description string    `gorm:"type:text" json:"description"`
	Status      string    `gorm:"size:20;not null;default:pending;index" json:"status"`
	CreatedAt   time.Time `json:"date"`

	UserName string `gorm:"->;-:migration" json:"userName,omitempty"`
}
