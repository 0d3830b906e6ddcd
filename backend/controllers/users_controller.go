package controllers

import (
	"studybuddy/backend/config"
	"studybuddy/backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UsersController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUsersController(db *gorm.DB, cfg *config.Config) *UsersController {
	return &UsersController{DB: db, Cfg: cfg}
}

// GetUsers lists every account; the password hash is never serialized.
func (uc *UsersController) GetUsers(c *fiber.Ctx) error {
	users := []models.User{}
	if err := uc.DB.Order("id").Find(&users).Error; err != nil {
		return err
	}
	return c.JSON(users)
}

func (uc *UsersController) GetCategories(c *fiber.Ctx) error {
	categories := []models.Category{}
	if err := uc.DB.Order("id").Find(&categories).Error; err != nil {
		return err
	}
	return c.JSON(categories)
}
