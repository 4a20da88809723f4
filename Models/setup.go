package Models

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/yosuke-furukawa/json5/encoding/json5"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "database.db"
	}

	connection, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	DB = connection

	// Foreign keys are off by default in sqlite; cascade deletes need them.
	DB.Exec("PRAGMA foreign_keys = ON")

	// 1. Models with no dependencies
	DB.AutoMigrate(
		&User{},
		&Task{},
	)

	// 2. Models with simple foreign key relationships
	DB.AutoMigrate(
		&Child{},
		&FCMToken{},
	)

	// 3. Models that depend on multiple other models
	DB.AutoMigrate(
		&ChildMeasurement{},
		&DailyAssignment{},
	)

	if err := SeedTaskCatalog(DB, "tasks.json5"); err != nil {
		log.Printf("Error seeding task catalog: %v", err)
	}
}

// seedTask is the shape of one entry in the tasks.json5 catalog file.
type seedTask struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Emoji       string   `json:"emoji"`
	Category    string   `json:"category"`
	Section     string   `json:"section"`
	AgeGroup    string   `json:"age_group"`
	DaySlot     int      `json:"day_slot"`
	SortOrder   int      `json:"sort_order"`
	Materials   []string `json:"materials"`
}

// SeedTaskCatalog loads the built-in catalog from a JSON5 file. It is a no-op
// when the tasks table already has rows, so restarting the server never
// duplicates the catalog.
func SeedTaskCatalog(db *gorm.DB, path string) error {
	var count int64
	if err := db.Model(&Task{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("No catalog seed file at %s, starting with empty catalog", path)
			return nil
		}
		return err
	}

	var seeds []seedTask
	if err := json5.Unmarshal(data, &seeds); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	tasks := make([]Task, 0, len(seeds))
	for _, s := range seeds {
		section := s.Section
		if section == "" {
			section = SectionTask
		}
		daySlot := s.DaySlot
		if daySlot == 0 {
			daySlot = 1
		}
		tasks = append(tasks, Task{
			Title:       s.Title,
			Description: s.Description,
			Emoji:       s.Emoji,
			Category:    s.Category,
			Section:     section,
			AgeGroup:    s.AgeGroup,
			DaySlot:     daySlot,
			SortOrder:   s.SortOrder,
			IsActive:    true,
			Materials:   s.Materials,
		})
	}
	if len(tasks) == 0 {
		return nil
	}
	if err := db.Create(&tasks).Error; err != nil {
		return err
	}
	log.Printf("Seeded %d catalog tasks from %s", len(tasks), path)
	return nil
}

// SetupTasks bulk-imports catalog entries from an Excel workbook maintained by
// content editors. Columns: title, description, emoji, category, section,
// age group, day slot, sort order, materials (comma separated).
func SetupTasks(path string) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		fmt.Println(err)
		return
	}
	var tasks []Task
	rows := f.GetRows("Sheet1")
	for rowIndex, row := range rows {
		if rowIndex == 0 {
			// header row
			continue
		}
		var task Task
		for columnIndex, data := range row {
			switch columnIndex {
			case 0:
				task.Title = data
			case 1:
				task.Description = data
			case 2:
				task.Emoji = data
			case 3:
				task.Category = data
			case 4:
				task.Section = data
			case 5:
				task.AgeGroup = data
			case 6:
				daySlot, err := strconv.Atoi(data)
				if err != nil {
					panic(err)
				}
				task.DaySlot = daySlot
			case 7:
				sortOrder, err := strconv.Atoi(data)
				if err != nil {
					panic(err)
				}
				task.SortOrder = sortOrder
			case 8:
				for _, m := range strings.Split(data, ",") {
					if m = strings.TrimSpace(m); m != "" {
						task.Materials = append(task.Materials, m)
					}
				}
			}
		}
		if task.Section == "" {
			task.Section = SectionTask
		}
		if task.DaySlot == 0 {
			task.DaySlot = 1
		}
		task.IsActive = true
		tasks = append(tasks, task)
	}
	if len(tasks) == 0 {
		return
	}
	if err := DB.Create(&tasks).Error; err != nil {
		panic(err)
	}
}
