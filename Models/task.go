package Models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Catalog sections. Only SectionTask entries participate in daily assignment;
// nutrition and development entries feed the tips screens.
const (
	SectionTask        = "task"
	SectionNutrition   = "nutrition"
	SectionDevelopment = "development"
)

// Task categories (activity type).
const (
	CategoryPlay      = "play"
	CategoryMotor     = "motor"
	CategorySpeech    = "speech"
	CategoryCognitive = "cognitive"
)

type Task struct {
	gorm.Model
	Title         string         `json:"title" gorm:"not null"`
	Description   string         `json:"description"`
	Emoji         string         `json:"emoji"`
	Category      string         `json:"category"`
	Section       string         `json:"section" gorm:"default:task;index"`
	AgeGroup      string         `json:"age_group" gorm:"not null;index"`
	DaySlot       int            `json:"day_slot" gorm:"default:1"`
	SortOrder     int            `json:"sort_order" gorm:"default:0"`
	IsActive      bool           `json:"is_active" gorm:"default:true"`
	Materials     []string       `json:"materials" gorm:"-"`
	JSONMaterials datatypes.JSON `json:"-"`
}

func (t *Task) BeforeSave(tx *gorm.DB) error {
	if t.Materials == nil {
		return nil
	}
	data, err := json.Marshal(t.Materials)
	if err != nil {
		return err
	}
	t.JSONMaterials = data
	return nil
}

func (t *Task) AfterFind(tx *gorm.DB) error {
	if len(t.JSONMaterials) == 0 {
		return nil
	}
	return json.Unmarshal(t.JSONMaterials, &t.Materials)
}

// ListActiveTasksForAgeGroup returns the active assignable catalog entries for
// an age group, ordered by sort order. This is the Selector's input set.
func ListActiveTasksForAgeGroup(db *gorm.DB, ageGroup string) ([]Task, error) {
	var tasks []Task
	err := db.Where("age_group = ? AND section = ? AND is_active = ?", ageGroup, SectionTask, true).
		Order("sort_order ASC, id ASC").
		Find(&tasks).Error
	return tasks, err
}
