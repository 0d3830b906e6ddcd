package models

import "time"

type Enrollment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	StudentID  uint      `gorm:"not null;uniqueIndex:idx_enrollments_student_course" json:"studentId"`
	CourseID   uint      `gorm:"not null;uniqueIndex:idx_enrollments_student_course;index" json:"courseId"`
	Student    *User     `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	Course     *Course   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	EnrolledAt time.Time `gorm:"autoCreateTime" json:"enrolledAt"`
}

// CompletedLesson marks one lesson finished by one student. The composite
// key makes repeated marks a no-op.
type CompletedLesson struct {
	StudentID   uint      `gorm:"primaryKey;autoIncrement:false" json:"studentId"`
	LessonID    uint      `gorm:"primaryKey;autoIncrement:false;index" json:"lessonId"`
	Lesson      *Lesson   `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"-"`
	CompletedAt time.Time `gorm:"autoCreateTime" json:"completedAt"`
}

// QuizScore is append-only; every attempt is a row.
type QuizScore struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"not null;index" json:"studentId"`
	QuizID    uint      `gorm:"not null;index" json:"quizId"`
	Quiz      *Quiz     `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"-"`
	Score     float64   `gorm:"not null" json:"score"`
	TakenAt   time.Time `gorm:"autoCreateTime" json:"date"`
}

type Payment struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	StudentID         uint      `gorm:"not null;index" json:"studentId"`
	CourseID          uint      `gorm:"not null;index" json:"courseId"`
	Course            *Course   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	Amount            float64   `gorm:"type:numeric(10,2);not null" json:"amount"`
	Currency          string    `gorm:"size:3;not null;default:USD" json:"currency"`
	Status            string    `gorm:"size:20;not null" json:"status"`
	Provider          string    `gorm:"size:50;not null" json:"provider"`
	ProviderReference string    `gorm:"size:100;uniqueIndex;not null" json:"reference"`
	CardLast4         string    `gorm:"size:4" json:"cardLast4"`
	CardholderName    string    `json:"cardholderName"`
	PaidAt            time.Time `json:"paidAt"`

	CourseTitle string `gorm:"->;-:migration" json:"courseTitle,omitempty"`
}

type Certificate struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	StudentID       uint      `gorm:"not null;uniqueIndex:idx_certificates_student_course" json:"studentId"`
	CourseID        uint      `gorm:"not null;uniqueIndex:idx_certificates_student_course" json:"courseId"`
	Course          *Course   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	CertificateCode string    `gorm:"uniqueIndex;not null" json:"certificateCode"`
	IssuedAt        time.Time `json:"issuedAt"`

	CourseTitle   string `gorm:"->;-:migration" json:"courseTitle"`
	AlreadyIssued bool   `gorm:"-" json:"alreadyIssued,omitempty"`
}
