package models

// PlatformStats is the admin dashboard aggregate.
type PlatformStats struct {
	TotalUsers       int64   `json:"totalUsers"`
	TotalCourses     int64   `json:"totalCourses"`
	TotalEnrollments int64   `json:"totalEnrollments"`
	ActiveUsers      int64   `json:"activeUsers"` // distinct enrolled students
	Revenue          float64 `json:"revenue"`
	CompletionRate   int     `json:"completionRate"`
}

// CourseStudent is a row of GET /api/courses/:id/students.
type CourseStudent struct {
	ID              uint     `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	EnrolledCourses []string `gorm:"-" json:"enrolledCourses"`
}
