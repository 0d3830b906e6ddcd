package controllers

import (
	"studybuddy/backend/config"
	"studybuddy/backend/models"
	"studybuddy/backend/services"
	"studybuddy/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LessonsController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Progress *services.ProgressService
}

func NewLessonsController(db *gorm.DB, cfg *config.Config) *LessonsController {
	return &LessonsController{DB: db, Cfg: cfg, Progress: services.NewProgressService(db)}
}

type completeLessonInput struct {
	StudentID uint `json:"studentId"`
	LessonID  uint `json:"lessonId"`
}

func (lc *LessonsController) GetLessons(c *fiber.Ctx) error {
	courseID, err := paramID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	lessons := []models.Lesson{}
	if err := lc.DB.Where("course_id = ?", courseID).Order("sort_order, id").Find(&lessons).Error; err != nil {
		return err
	}
	return c.JSON(lessons)
}

// AddLesson appends a lesson after the course's current last one.
func (lc *LessonsController) AddLesson(c *fiber.Ctx) error {
	courseID, err := paramID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	var input lessonInput
	if err := parseBody(c, &input); err != nil {
		return utils.Fail(c, err)
	}

	var lesson models.Lesson
	err = lc.DB.Transaction(func(tx *gorm.DB) error {
		// The course row lock serializes appends so MAX+1 stays unique.
		var course models.Course
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&course, courseID).Error; err != nil {
			if utils.IsNotFound(err) {
				return utils.NotFoundErr("Course not found")
			}
			return err
		}

		var maxOrder int
		if err := tx.Model(&models.Lesson{}).Where("course_id = ?", courseID).
			Select("COALESCE(MAX(sort_order), 0)").Scan(&maxOrder).Error; err != nil {
			return err
		}

		lesson = newLesson(input, maxOrder+1)
		lesson.CourseID = courseID
		return tx.Create(&lesson).Error
	})
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Created(c, lesson)
}

// DeleteLesson removes ?lessonId= from the course. Remaining lessons keep
// their sortOrder.
func (lc *LessonsController) DeleteLesson(c *fiber.Ctx) error {
	courseID, err := paramID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	lessonID, ok, err := queryID(c, "lessonId")
	if err != nil {
		return utils.Fail(c, err)
	}
	if !ok {
		return utils.BadRequest(c, "lessonId query param required")
	}

	res := lc.DB.Where("id = ? AND course_id = ?", lessonID, courseID).Delete(&models.Lesson{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.NotFound(c, "Lesson not found")
	}
	return utils.Message(c, fiber.StatusOK, "Lesson deleted")
}

func (lc *LessonsController) CompleteLesson(c *fiber.Ctx) error {
	courseID, err := paramID(c, "id")
	if err != nil {
		return utils.Fail(c, err)
	}
	var input completeLessonInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.StudentID == 0 || input.LessonID == 0 {
		return utils.BadRequest(c, "studentId and lessonId are required")
	}

	if err := lc.Progress.CompleteLesson(c.UserContext(), input.StudentID, courseID, input.LessonID); err != nil {
		return utils.Fail(c, err)
	}
	return utils.Message(c, fiber.StatusOK, "Lesson marked as complete")
}
