package Controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"KidGrow/Models"
)

// TaskController serves the read-only task catalog
type TaskController struct {
	DB *gorm.DB
}

// NewTaskController creates a new TaskController
func NewTaskController(db *gorm.DB) *TaskController {
	return &TaskController{DB: db}
}

// GetTasks lists active catalog entries, filterable by section and age group.
// The Tips screens read the nutrition and development sections through this
// same endpoint.
func (tc *TaskController) GetTasks(ctx *fiber.Ctx) error {
	query := tc.DB.Where("is_active = ?", true)
	if section := ctx.Query("section"); section != "" {
		query = query.Where("section = ?", section)
	}
	if ageGroup := ctx.Query("age_group"); ageGroup != "" {
		if !Models.IsValidAgeGroup(ageGroup) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid age group"})
		}
		query = query.Where("age_group = ?", ageGroup)
	}

	var tasks []Models.Task
	result := query.Order("age_group ASC, sort_order ASC").Find(&tasks)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve tasks"})
	}
	return ctx.JSON(tasks)
}
