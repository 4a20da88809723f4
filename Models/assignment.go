package Models

import (
	"time"

	"gorm.io/gorm"
)

// DailyAssignment links a child to one catalog task on one calendar date.
// The (child, task, date) triple is unique: the constraint, not application
// locking, is what prevents duplicate task delivery when the nightly sweep
// and a lazy request race each other.
type DailyAssignment struct {
	gorm.Model
	ChildID      uint       `json:"child_id" gorm:"not null;uniqueIndex:idx_assignment_triple"`
	Child        Child      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	TaskID       uint       `json:"task_id" gorm:"not null;uniqueIndex:idx_assignment_triple"`
	Task         Task       `json:"task" gorm:"constraint:OnDelete:RESTRICT"`
	AssignedDate DateOnly   `json:"assigned_date" gorm:"type:date;not null;uniqueIndex:idx_assignment_triple"`
	IsCompleted  bool       `json:"is_completed" gorm:"default:false;index"`
	CompletedAt  *time.Time `json:"completed_at"`
}
