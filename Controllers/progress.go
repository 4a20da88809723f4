package Controllers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"KidGrow/Progress"
	"KidGrow/middleware"
)

// ProgressController exposes per-child progress statistics
type ProgressController struct {
	Service *Progress.Service
}

// NewProgressController creates a new ProgressController
func NewProgressController(service *Progress.Service) *ProgressController {
	return &ProgressController{Service: service}
}

// GetAllProgress returns a progress bundle for every child of the caller
func (pc *ProgressController) GetAllProgress(ctx *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not Logged In."})
	}

	bundles, err := pc.Service.GetAllProgress(user.ID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute progress"})
	}
	return ctx.JSON(bundles)
}

// GetChildProgress returns one child's bundle; ?days=N widens or narrows the
// per-day window (default 30)
func (pc *ProgressController) GetChildProgress(ctx *fiber.Ctx) error {
	bundle, resp, ok := pc.childBundle(ctx)
	if !ok {
		return resp
	}
	return ctx.JSON(bundle)
}

// ExportChildProgress streams the child's progress report as an Excel file
func (pc *ProgressController) ExportChildProgress(ctx *fiber.Ctx) error {
	bundle, resp, ok := pc.childBundle(ctx)
	if !ok {
		return resp
	}

	buf, err := Progress.BuildWorkbook(bundle)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build report"})
	}

	filename := fmt.Sprintf("progress_%s.xlsx", bundle.Child.Name)
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return ctx.Send(buf.Bytes())
}

func (pc *ProgressController) childBundle(ctx *fiber.Ctx) (Progress.Bundle, error, bool) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		return Progress.Bundle{}, ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not Logged In."}), false
	}
	childID, err := strconv.Atoi(ctx.Params("childId"))
	if err != nil {
		return Progress.Bundle{}, ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid child ID"}), false
	}

	days := Progress.DefaultWindowDays
	if raw := ctx.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return Progress.Bundle{}, ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid days value"}), false
		}
		days = parsed
	}

	bundle, err := pc.Service.GetChildProgress(uint(childID), user.ID, days)
	if err != nil {
		return Progress.Bundle{}, serviceError(ctx, err, "Child not found"), false
	}
	return bundle, nil, true
}
