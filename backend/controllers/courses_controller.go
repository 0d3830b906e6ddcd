package controllers

import (
	"strings"

	"studybuddy/backend/config"
	"studybuddy/backend/models"
	"studybuddy/backend/services"
	"studybuddy/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CoursesController struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Log     *utils.Logger
	Quizzes *services.QuizService
}

func NewCoursesController(db *gorm.DB, cfg *config.Config, log *utils.Logger) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg, Log: log, Quizzes: services.NewQuizService(db)}
}

type lessonInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Content     string `json:"content"`
	VideoURL    string `json:"videoUrl"`
}

type createCourseInput struct {
	Title        string               `json:"title" validate:"required"`
	Description  string               `json:"description"`
	InstructorID uint                 `json:"instructorId" validate:"required"`
	Category     string               `json:"category"`
	Level        string               `json:"level"`
	Duration     string               `json:"duration"`
	Price        float64              `json:"price" validate:"gte=0"`
	Image        string               `json:"image"`
	Lessons      []lessonInput        `json:"lessons" validate:"dive"`
	Quizzes      []services.QuizInput `json:"quizzes"`
}

// withDetails preloads lessons and quizzes in display order.
func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Instructor").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order, id") }).
		Preload("Quizzes", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Quizzes.Questions", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order, id") })
}

// fillReadFields sets the instructor name and the enrolled-student count.
func (cc *CoursesController) fillReadFields(courses []models.Course) error {
	if len(courses) == 0 {
		return nil
	}
	ids := make([]uint, len(courses))
	for i := range courses {
		ids[i] = courses[i].ID
	}

	// One grouped count covers every course on the page.
	var rows []struct {
		CourseID uint
		Count    int64
	}
	if err := cc.DB.Model(&models.Enrollment{}).
		Select("course_id, COUNT(*) AS count").
		Where("course_id IN ?", ids).
		Group("course_id").
		Scan(&rows).Error; err != nil {
		return err
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.CourseID] = r.Count
	}

	for i := range courses {
		course := &courses[i]
		if course.Instructor != nil {
			course.InstructorName = course.Instructor.Name
		}
		course.Students = counts[course.ID]
		if course.Lessons == nil {
			course.Lessons = []models.Lesson{}
		}
		if course.Quizzes == nil {
			course.Quizzes = []models.Quiz{}
		}
		for j := range course.Quizzes {
			if course.Quizzes[j].Questions == nil {
				course.Quizzes[j].Questions = []models.QuizQuestion{}
			}
		}
	}
	return nil
}

func (cc *CoursesController) loadCourse(id uint) (*models.Course, error) {
	courses := []models.Course{}
	if err := withDetails(cc.DB).Where("id = ?", id).Limit(1).Find(&courses).Error; err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, utils.NotFoundErr("Course not found")
	}
	if err := cc.fillReadFields(courses); err != nil {
		return nil, err
	}
	return &courses[0], nil
}

// GetCourses godoc
// @Summary List courses with lessons and quizzes
// @Tags courses
// @Produce json
// @Param instructorId query int false "Only courses owned by this instructor"
// @Router /courses [get]
func (cc *CoursesController) GetCourses(c *fiber.Ctx) error {
	instructorID, filtered, err := queryID(c, "instructorId")
	if err != nil {
		return utils.Fail(c, err)
	}

	query := withDetails(cc.DB).Order("id")
	if filtered {
		query = query.Where("instructor_id = ?", instructorID)
	}

	courses := []models.Course{}
	if err := query.Find(&courses).Error; err != nil {
		return err
	}
	if err := cc.fillReadFields(courses); err != nil {
		return err
	}
	return c.JSON(courses)
}

func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	course, err := cc.loadCourse(id)
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(course)
}

// UpdateCourse applies a partial update; absent fields keep their value.
func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	var patch models.CoursePatch
	if err := parseBody(c, &patch); err != nil {
		return utils.Fail(c, err)
	}

	var count int64
	if err := cc.DB.Model(&models.Course{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return utils.NotFound(c, "Course not found")
	}

	if cols := patch.Columns(); len(cols) > 0 {
		if err := cc.DB.Model(&models.Course{}).Where("id = ?", id).Updates(cols).Error; err != nil {
			return err
		}
	}

	course, err := cc.loadCourse(id)
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(course)
}

// CreateCourse inserts the course with any nested lessons and quizzes in
// one transaction.
func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	var input createCourseInput
	if err := parseBody(c, &input); err != nil {
		return utils.Fail(c, err)
	}
	if strings.TrimSpace(input.Title) == "" {
		return utils.BadRequest(c, "title is required")
	}

	var instructor models.User
	if err := cc.DB.Select("id").First(&instructor, input.InstructorID).Error; err != nil {
		if utils.IsNotFound(err) {
			return utils.NotFound(c, "Instructor not found")
		}
		return err
	}

	// Validate everything before the transaction opens.
	for _, q := range input.Quizzes {
		if strings.TrimSpace(q.Title) == "" {
			return utils.BadRequest(c, "quiz title is required")
		}
		if err := services.ValidateQuestions(q.Questions); err != nil {
			return utils.Fail(c, err)
		}
	}

	course := models.Course{
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		InstructorID: input.InstructorID,
		Category:     input.Category,
		Level:        input.Level,
		Duration:     input.Duration,
		Price:        input.Price,
		Image:        input.Image,
	}
	for i, l := range input.Lessons {
		course.Lessons = append(course.Lessons, newLesson(l, i+1))
	}

	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&course).Error; err != nil {
			return err
		}
		for _, q := range input.Quizzes {
			if _, err := cc.Quizzes.Create(c.UserContext(), tx, course.ID, q); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.Fail(c, err)
	}

	cc.Log.Info("Course created", "course_id", course.ID, "instructor_id", course.InstructorID)
	return utils.Created(c, fiber.Map{"id": course.ID, "message": "Course created"})
}

// GetCourseStudents lists enrolled students with every course they take.
func (cc *CoursesController) GetCourseStudents(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}

	students := []models.CourseStudent{}
	if err := cc.DB.Model(&models.User{}).
		Select("users.id, users.name, users.email").
		Joins("JOIN enrollments ON enrollments.student_id = users.id").
		Where("enrollments.course_id = ?", id).
		Order("users.name, users.id").
		Scan(&students).Error; err != nil {
		return err
	}
	if len(students) == 0 {
		return c.JSON(students)
	}

	ids := make([]uint, len(students))
	for i := range students {
		ids[i] = students[i].ID
	}
	var rows []struct {
		StudentID uint
		Title     string
	}
	if err := cc.DB.Model(&models.Enrollment{}).
		Select("enrollments.student_id, courses.title").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("enrollments.student_id IN ?", ids).
		Order("enrollments.id").
		Scan(&rows).Error; err != nil {
		return err
	}
	titles := make(map[uint][]string, len(students))
	for _, r := range rows {
		titles[r.StudentID] = append(titles[r.StudentID], r.Title)
	}
	for i := range students {
		students[i].EnrolledCourses = titles[students[i].ID]
		if students[i].EnrolledCourses == nil {
			students[i].EnrolledCourses = []string{}
		}
	}
	return c.JSON(students)
}

func newLesson(in lessonInput, sortOrder int) models.Lesson {
	videoURL := strings.TrimSpace(in.VideoURL)
	if videoURL == "" {
		videoURL = "#"
	}
	return models.Lesson{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Duration:    in.Duration,
		Content:     in.Content,
		VideoURL:    videoURL,
		SortOrder:   sortOrder,
	}
}
