package Controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"KidGrow/Assignments"
	"KidGrow/Models"
	"KidGrow/middleware"
)

// AssignmentController exposes daily assignments and completion toggles
type AssignmentController struct {
	Service *Assignments.Service
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(service *Assignments.Service) *AssignmentController {
	return &AssignmentController{Service: service}
}

// GetChildAssignments returns a child's assignments for a date (today when
// omitted, which also lazily materializes today's set) plus any still
// incomplete assignments from earlier days.
func (ac *AssignmentController) GetChildAssignments(ctx *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not Logged In."})
	}
	childID, err := strconv.Atoi(ctx.Params("childId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid child ID"})
	}

	var date *Models.DateOnly
	if raw := ctx.Query("date"); raw != "" {
		parsed, err := Models.ParseDateOnly(raw)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, want YYYY-MM-DD"})
		}
		date = &parsed
	}

	assignments, err := ac.Service.GetForChild(uint(childID), user.ID, date)
	if err != nil {
		return serviceError(ctx, err, "Child not found")
	}
	return ctx.JSON(assignments)
}

// CompleteAssignment marks an assignment as completed
func (ac *AssignmentController) CompleteAssignment(ctx *fiber.Ctx) error {
	return ac.toggle(ctx, true)
}

// UncompleteAssignment removes the checkmark again
func (ac *AssignmentController) UncompleteAssignment(ctx *fiber.Ctx) error {
	return ac.toggle(ctx, false)
}

func (ac *AssignmentController) toggle(ctx *fiber.Ctx, completed bool) error {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not Logged In."})
	}
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid assignment ID"})
	}

	var assignment Models.DailyAssignment
	if completed {
		assignment, err = ac.Service.Complete(uint(id), user.ID)
	} else {
		assignment, err = ac.Service.Uncomplete(uint(id), user.ID)
	}
	if err != nil {
		return serviceError(ctx, err, "Assignment not found")
	}
	return ctx.JSON(assignment)
}

// serviceError maps service-boundary sentinel errors onto HTTP statuses
func serviceError(ctx *fiber.Ctx, err error, notFoundMessage string) error {
	switch {
	case errors.Is(err, Assignments.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": notFoundMessage})
	case errors.Is(err, Assignments.ErrForbidden):
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You may not access this"})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}
}
