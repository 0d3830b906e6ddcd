package models

import "time"

type Course struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `json:"description"`
	InstructorID uint      `gorm:"index" json:"instructorId"`
	Instructor   *User     `gorm:"foreignKey:InstructorID;constraint:OnDelete:SET NULL" json:"-"`
	Category     string    `gorm:"index" json:"category"`
	Level        string    `json:"level"` // beginner, intermediate, advanced
	Duration     string    `json:"duration"`
	Price        float64   `gorm:"type:numeric(10,2);not null;default:0" json:"price"`
	Image        string    `json:"image"`
	Rating       float64   `gorm:"type:numeric(3,2);not null;default:0" json:"rating"`
	CreatedAt    time.Time `json:"-"`
	Lessons      []Lesson  `gorm:"constraint:OnDelete:CASCADE" json:"lessons"`
	Quizzes      []Quiz    `gorm:"constraint:OnDelete:CASCADE" json:"quizzes"`

	// Filled on read, never stored.
	InstructorName string `gorm:"-" json:"instructor"`
	Students       int64  `gorm:"-" json:"students"`
}

// CoursePatch is a partial update. Nil fields keep the stored value.
type CoursePatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Level       *string  `json:"level"`
	Duration    *string  `json:"duration"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Image       *string  `json:"image"`
}

// Columns returns only the fields present in the patch, keyed by column.
func (p CoursePatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.Category != nil {
		cols["category"] = *p.Category
	}
	if p.Level != nil {
		cols["level"] = *p.Level
	}
	if p.Duration != nil {
		cols["duration"] = *p.Duration
	}
	if p.Price != nil {
		cols["price"] = *p.Price
	}
	if p.Image != nil {
		cols["image"] = *p.Image
	}
	return cols
}

type Lesson struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CourseID    uint      `gorm:"not null;index" json:"courseId"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Duration    string    `json:"duration"`
	Content     string    `json:"content"`
	VideoURL    string    `json:"videoUrl"`
	SortOrder   int       `gorm:"not null;default:0;index" json:"sortOrder"`
	CreatedAt   time.Time `json:"-"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
	Icon string `json:"icon"`
}
