package Controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"KidGrow/Models"
)

// newChildApp wires the child routes behind a stub auth layer that always
// authenticates a freshly created account.
func newChildApp(t *testing.T) (*fiber.App, *gorm.DB, Models.User) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm.Open failed: %v", err)
	}
	err = db.AutoMigrate(
		&Models.User{},
		&Models.Task{},
		&Models.Child{},
		&Models.ChildMeasurement{},
		&Models.DailyAssignment{},
	)
	if err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}

	user := Models.User{Name: "Pat", Email: "pat@example.com", Password: []byte("x")}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", user)
		return c.Next()
	})
	controller := NewChildController(db)
	app.Get("/children", controller.GetChildren)
	app.Delete("/children/:id", controller.DeleteChild)
	return app, db, user
}

func TestDeleteChildRemovesDependents(t *testing.T) {
	app, db, user := newChildApp(t)

	child := Models.Child{UserID: user.ID, Name: "Mira", AgeGroup: Models.AgeGroupToddler}
	if err := db.Create(&child).Error; err != nil {
		t.Fatalf("create child failed: %v", err)
	}
	task := Models.Task{Title: "Block tower", Section: Models.SectionTask, AgeGroup: Models.AgeGroupToddler, IsActive: true}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("create task failed: %v", err)
	}
	assignment := Models.DailyAssignment{ChildID: child.ID, TaskID: task.ID, AssignedDate: Models.Today(nil)}
	if err := db.Create(&assignment).Error; err != nil {
		t.Fatalf("create assignment failed: %v", err)
	}
	height := 92.0
	measurement := Models.ChildMeasurement{ChildID: child.ID, HeightCm: &height}
	if err := db.Create(&measurement).Error; err != nil {
		t.Fatalf("create measurement failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/children/"+strconv.Itoa(int(child.ID)), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete returned status %d", resp.StatusCode)
	}

	var count int64
	db.Model(&Models.Child{}).Where("id = ?", child.ID).Count(&count)
	if count != 0 {
		t.Fatalf("child still present after delete")
	}
	db.Model(&Models.DailyAssignment{}).Where("child_id = ?", child.ID).Count(&count)
	if count != 0 {
		t.Fatalf("assignments survived child delete")
	}
	db.Model(&Models.ChildMeasurement{}).Where("child_id = ?", child.ID).Count(&count)
	if count != 0 {
		t.Fatalf("measurements survived child delete")
	}
	// The catalog is shared, deleting a child never touches it.
	db.Model(&Models.Task{}).Count(&count)
	if count != 1 {
		t.Fatalf("catalog task count = %d after child delete, want 1", count)
	}
}

func TestDeleteChildOwnership(t *testing.T) {
	app, db, user := newChildApp(t)

	other := Models.Child{UserID: user.ID + 1, Name: "Dana", AgeGroup: Models.AgeGroupInfant}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("create child failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/children/"+strconv.Itoa(int(other.ID)), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("deleting another account's child returned %d, want 403", resp.StatusCode)
	}

	var count int64
	db.Model(&Models.Child{}).Where("id = ?", other.ID).Count(&count)
	if count != 1 {
		t.Fatalf("child was deleted despite ownership check")
	}
}

func TestGetChildrenScopedToAccount(t *testing.T) {
	app, db, user := newChildApp(t)

	mine := Models.Child{UserID: user.ID, Name: "Mira", AgeGroup: Models.AgeGroupToddler}
	theirs := Models.Child{UserID: user.ID + 1, Name: "Dana", AgeGroup: Models.AgeGroupInfant}
	for _, c := range []*Models.Child{&mine, &theirs} {
		if err := db.Create(c).Error; err != nil {
			t.Fatalf("create child failed: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/children", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list returned status %d", resp.StatusCode)
	}

	var children []Models.Child
	if err := json.NewDecoder(resp.Body).Decode(&children); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if len(children) != 1 || children[0].Name != "Mira" {
		t.Fatalf("expected only the caller's child, got %+v", children)
	}
}
