package Models

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FCMToken is a registered push-notification device token. One user can hold
// several tokens (one per device).
type FCMToken struct {
	gorm.Model
	UserID uint   `json:"user_id" gorm:"not null;index"`
	Value  string `json:"value" gorm:"not null;uniqueIndex"`
}

type UpdateTokenRequest struct {
	Value string `json:"value" validate:"required"`
}

// UpdateToken registers (or refreshes) the calling user's device token.
func UpdateToken(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(User)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Not logged in",
		})
	}

	var req UpdateTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Value == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Token value is required",
		})
	}

	var token FCMToken
	err := DB.Where("value = ?", req.Value).
		FirstOrCreate(&token, FCMToken{UserID: user.ID, Value: req.Value}).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create/update token",
		})
	}

	// Token may have been registered by another account on a shared device.
	if token.UserID != user.ID {
		token.UserID = user.ID
		if err := DB.Save(&token).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update token",
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Token updated successfully",
	})
}
