package Controllers

import (
	"fmt"
	"os"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"KidGrow/Models"
	"KidGrow/middleware"
)

// ChildController handles child profiles and their measurement history
type ChildController struct {
	DB *gorm.DB
}

// NewChildController creates a new ChildController
func NewChildController(db *gorm.DB) *ChildController {
	return &ChildController{DB: db}
}

// GetChildren lists all children of the current user
func (cc *ChildController) GetChildren(ctx *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not Logged In."})
	}

	var children []Models.Child
	result := cc.DB.Preload("Measurements").
		Where("user_id = ?", user.ID).
		Order("created_at ASC").
		Find(&children)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve children"})
	}
	return ctx.JSON(children)
}

// GetChild retrieves a single child by ID
func (cc *ChildController) GetChild(ctx *fiber.Ctx) error {
	child, resp := cc.ownedChild(ctx)
	if child == nil {
		return resp
	}
	if err := cc.DB.Preload("Measurements").First(child, child.ID).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve child"})
	}
	return ctx.JSON(child)
}

// CreateChild adds a child profile, with an optional initial measurement
func (cc *ChildController) CreateChild(ctx *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not Logged In."})
	}

	var req Models.ChildRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := ValidateStruct(req); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	child := Models.Child{
		UserID:   user.ID,
		Name:     req.Name,
		AgeGroup: req.AgeGroup,
	}
	if req.AvatarColor != "" {
		child.AvatarColor = req.AvatarColor
	}
	if req.BirthDate != "" {
		birthDate, err := Models.ParseDateOnly(req.BirthDate)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid birth date"})
		}
		child.BirthDate = &birthDate
	}

	if err := cc.DB.Create(&child).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create child"})
	}

	// Record the starting height/weight when provided
	if req.HeightCm != nil || req.WeightKg != nil {
		measurement := Models.ChildMeasurement{
			ChildID:  child.ID,
			HeightCm: req.HeightCm,
			WeightKg: req.WeightKg,
			Note:     "Initial measurement",
		}
		if err := cc.DB.Create(&measurement).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save measurement"})
		}
	}

	cc.DB.Preload("Measurements").First(&child, child.ID)
	return ctx.Status(fiber.StatusCreated).JSON(child)
}

// UpdateChild updates a child's profile. A changed age group only affects
// future materializations; existing assignments stay as they were created.
func (cc *ChildController) UpdateChild(ctx *fiber.Ctx) error {
	child, resp := cc.ownedChild(ctx)
	if child == nil {
		return resp
	}

	var req Models.ChildRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.AgeGroup != "" {
		if !Models.IsValidAgeGroup(req.AgeGroup) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid age group"})
		}
		updates["age_group"] = req.AgeGroup
	}
	if req.AvatarColor != "" {
		updates["avatar_color"] = req.AvatarColor
	}
	if req.BirthDate != "" {
		birthDate, err := Models.ParseDateOnly(req.BirthDate)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid birth date"})
		}
		updates["birth_date"] = birthDate
	}
	if len(updates) > 0 {
		if err := cc.DB.Model(child).Updates(updates).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update child"})
		}
	}

	// A height/weight in the update payload appends a new snapshot
	if req.HeightCm != nil || req.WeightKg != nil {
		measurement := Models.ChildMeasurement{
			ChildID:  child.ID,
			HeightCm: req.HeightCm,
			WeightKg: req.WeightKg,
			Note:     "Updated by parent",
		}
		if err := cc.DB.Create(&measurement).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save measurement"})
		}
	}

	cc.DB.Preload("Measurements").First(child, child.ID)
	return ctx.JSON(child)
}

// DeleteChild removes a child and, through cascades, its assignments and
// measurements. Catalog tasks are untouched.
func (cc *ChildController) DeleteChild(ctx *fiber.Ctx) error {
	child, resp := cc.ownedChild(ctx)
	if child == nil {
		return resp
	}

	if err := cc.DB.Where("child_id = ?", child.ID).Delete(&Models.DailyAssignment{}).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete child"})
	}
	if err := cc.DB.Where("child_id = ?", child.ID).Delete(&Models.ChildMeasurement{}).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete child"})
	}
	if err := cc.DB.Delete(child).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete child"})
	}
	return ctx.JSON(fiber.Map{"message": "Child deleted successfully"})
}

// GetMeasurements returns the full height/weight history, oldest first
func (cc *ChildController) GetMeasurements(ctx *fiber.Ctx) error {
	child, resp := cc.ownedChild(ctx)
	if child == nil {
		return resp
	}

	var measurements []Models.ChildMeasurement
	result := cc.DB.Where("child_id = ?", child.ID).
		Order("measured_at ASC").
		Find(&measurements)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve measurements"})
	}
	return ctx.JSON(measurements)
}

// AddMeasurement appends a new height/weight snapshot
func (cc *ChildController) AddMeasurement(ctx *fiber.Ctx) error {
	child, resp := cc.ownedChild(ctx)
	if child == nil {
		return resp
	}

	var req Models.MeasurementRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := ValidateStruct(req); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	measurement := Models.ChildMeasurement{
		ChildID:  child.ID,
		HeightCm: req.HeightCm,
		WeightKg: req.WeightKg,
		Note:     req.Note,
	}
	if err := cc.DB.Create(&measurement).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save measurement"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(measurement)
}

// UploadChildPhoto stores an avatar photo and a 256px thumbnail
func (cc *ChildController) UploadChildPhoto(ctx *fiber.Ctx) error {
	child, resp := cc.ownedChild(ctx)
	if child == nil {
		return resp
	}

	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Photo file is required"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Could not read photo"})
	}
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unsupported image format"})
	}

	if err := os.MkdirAll("ChildPhotos", 0755); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save photo"})
	}

	photoPath := fmt.Sprintf("ChildPhotos/%d.jpg", child.ID)
	thumbPath := fmt.Sprintf("ChildPhotos/%d_thumb.jpg", child.ID)

	if err := imaging.Save(img, photoPath); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save photo"})
	}
	thumb := imaging.Fill(img, 256, 256, imaging.Center, imaging.Lanczos)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save photo"})
	}

	if err := cc.DB.Model(child).Update("photo_path", photoPath).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save photo"})
	}
	return ctx.JSON(fiber.Map{"photo_path": photoPath, "thumb_path": thumbPath})
}

// ownedChild resolves the :id param to a child owned by the caller. On
// failure it writes the error response and returns a nil child, so handlers
// bail with a single check. Non-owners get a 403 without any record detail.
func (cc *ChildController) ownedChild(ctx *fiber.Ctx) (*Models.Child, error) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		return nil, ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not Logged In."})
	}
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return nil, ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid child ID"})
	}

	var child Models.Child
	if err := cc.DB.First(&child, id).Error; err != nil {
		return nil, ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Child not found"})
	}
	if child.UserID != user.ID {
		return nil, ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You may not access this child"})
	}
	return &child, nil
}
