package Models

import (
	"os"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm.Open failed: %v", err)
	}
	if err := db.AutoMigrate(&Task{}); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}
	return db
}

const seedFixture = `
// comments and trailing commas are fine here
[
  { title: "Block tower", category: "play", age_group: "toddler", day_slot: 1, sort_order: 1, materials: ["building blocks"] },
  { title: "Shape sorter", category: "cognitive", age_group: "toddler", day_slot: 2, sort_order: 2 },
  // section and day_slot default to "task" and 1
  { title: "Tummy time", category: "motor", age_group: "infant" },
  { title: "Water before juice", section: "nutrition", category: "cognitive", age_group: "preschool" },
]
`

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json5")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestSeedTaskCatalog(t *testing.T) {
	db := newTestDB(t)
	path := writeSeedFile(t, seedFixture)

	if err := SeedTaskCatalog(db, path); err != nil {
		t.Fatalf("SeedTaskCatalog failed: %v", err)
	}

	var count int64
	if err := db.Model(&Task{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 4 {
		t.Fatalf("seeded %d tasks, want 4", count)
	}

	var tummy Task
	if err := db.Where("title = ?", "Tummy time").First(&tummy).Error; err != nil {
		t.Fatalf("load seeded task failed: %v", err)
	}
	if tummy.Section != SectionTask || tummy.DaySlot != 1 || !tummy.IsActive {
		t.Fatalf("defaults not applied: %+v", tummy)
	}

	var blocks Task
	if err := db.Where("title = ?", "Block tower").First(&blocks).Error; err != nil {
		t.Fatalf("load seeded task failed: %v", err)
	}
	if len(blocks.Materials) != 1 || blocks.Materials[0] != "building blocks" {
		t.Fatalf("materials not round-tripped: %v", blocks.Materials)
	}

	// Re-seeding a populated table is a no-op.
	if err := SeedTaskCatalog(db, path); err != nil {
		t.Fatalf("SeedTaskCatalog rerun failed: %v", err)
	}
	if err := db.Model(&Task{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 4 {
		t.Fatalf("rerun grew catalog to %d tasks", count)
	}
}

func TestSeedTaskCatalogMissingFile(t *testing.T) {
	db := newTestDB(t)
	if err := SeedTaskCatalog(db, filepath.Join(t.TempDir(), "absent.json5")); err != nil {
		t.Fatalf("missing seed file should be a no-op, got %v", err)
	}
	var count int64
	if err := db.Model(&Task{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("missing seed file created %d tasks", count)
	}
}

func TestListActiveTasksForAgeGroup(t *testing.T) {
	db := newTestDB(t)
	seed := []Task{
		{Title: "Ball rolling", Section: SectionTask, AgeGroup: "toddler", SortOrder: 2, IsActive: true},
		{Title: "Block tower", Section: SectionTask, AgeGroup: "toddler", SortOrder: 1, IsActive: true},
		{Title: "Retired", Section: SectionTask, AgeGroup: "toddler", SortOrder: 0, IsActive: true},
		{Title: "Iron-rich breakfast ideas", Section: SectionNutrition, AgeGroup: "toddler", SortOrder: 0, IsActive: true},
		{Title: "Riddle of the day", Section: SectionTask, AgeGroup: "schoolage", SortOrder: 0, IsActive: true},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("create task failed: %v", err)
		}
	}
	if err := db.Model(&Task{}).Where("title = ?", "Retired").Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate task failed: %v", err)
	}

	tasks, err := ListActiveTasksForAgeGroup(db, "toddler")
	if err != nil {
		t.Fatalf("ListActiveTasksForAgeGroup failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 eligible tasks, got %d", len(tasks))
	}
	if tasks[0].Title != "Block tower" || tasks[1].Title != "Ball rolling" {
		t.Fatalf("sort order wrong: %s, %s", tasks[0].Title, tasks[1].Title)
	}
}
