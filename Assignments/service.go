package Assignments

import (
	"errors"
	"log"
	"os"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"KidGrow/Models"
)

// Service materializes daily assignments and handles completion toggles.
// Correctness under concurrent materialization (nightly sweep racing a lazy
// request, or two lazy requests) rests on the (child, task, date) unique
// constraint combined with conflict-safe inserts, so no in-process locking
// is needed and multiple server instances can run at once.
type Service struct {
	DB       *gorm.DB
	Location *time.Location
}

func NewService(db *gorm.DB, loc *time.Location) *Service {
	if loc == nil {
		loc = DefaultLocation()
	}
	return &Service{DB: db, Location: loc}
}

// DefaultLocation resolves the fixed zone in which "today" is evaluated. The
// sweep must behave the same regardless of where the server is deployed.
func DefaultLocation() *time.Location {
	name := os.Getenv("SWEEP_TZ")
	if name == "" {
		name = "Asia/Almaty"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Unknown timezone %q, falling back to UTC", name)
		return time.UTC
	}
	return loc
}

// Today returns the current calendar date in the service's fixed zone.
func (s *Service) Today() Models.DateOnly {
	return Models.Today(s.Location)
}

// EnsureForDate guarantees the child's assignments for a date exist, created
// at most once. The count check skips redundant Selector work on repeat
// calls; the conflict-safe insert is what makes concurrent calls safe.
func (s *Service) EnsureForDate(child Models.Child, date Models.DateOnly) error {
	var existing int64
	err := s.DB.Model(&Models.DailyAssignment{}).
		Where("child_id = ? AND assigned_date = ?", child.ID, date).
		Count(&existing).Error
	if err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	tasks, err := Models.ListActiveTasksForAgeGroup(s.DB, child.AgeGroup)
	if err != nil {
		return err
	}
	selected := SelectDailyTasks(tasks, date)
	if len(selected) == 0 {
		return nil
	}

	rows := make([]Models.DailyAssignment, 0, len(selected))
	for _, task := range selected {
		rows = append(rows, Models.DailyAssignment{
			ChildID:      child.ID,
			TaskID:       task.ID,
			AssignedDate: date,
		})
	}

	// Insert-if-absent: a duplicate triple is silently skipped, never an
	// error, and an existing row's completed flag is never overwritten.
	return s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

// GetForChild returns the child's assignments for the requested date together
// with every still-incomplete assignment from earlier dates, so an unfinished
// task stays visible when a new day begins. When the request targets today
// (or omits the date) the set is lazily materialized first.
func (s *Service) GetForChild(childID, userID uint, date *Models.DateOnly) ([]Models.DailyAssignment, error) {
	child, err := s.resolveOwnedChild(childID, userID)
	if err != nil {
		return nil, err
	}

	today := s.Today()
	target := today
	if date != nil {
		target = *date
	}
	if target.Equal(today) {
		if err := s.EnsureForDate(child, today); err != nil {
			return nil, err
		}
	}

	// A single OR query returns each matching row once, so a row satisfying
	// both predicates is already deduplicated.
	var assignments []Models.DailyAssignment
	err = s.DB.Preload("Task").
		Where("child_id = ? AND (assigned_date = ? OR is_completed = ?)", childID, target, false).
		Order("assigned_date DESC, created_at ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// Complete marks an assignment done and stamps the completion time.
func (s *Service) Complete(assignmentID, userID uint) (Models.DailyAssignment, error) {
	now := time.Now()
	return s.setCompleted(assignmentID, userID, true, &now)
}

// Uncomplete removes the checkmark and clears the completion time.
func (s *Service) Uncomplete(assignmentID, userID uint) (Models.DailyAssignment, error) {
	return s.setCompleted(assignmentID, userID, false, nil)
}

func (s *Service) setCompleted(assignmentID, userID uint, completed bool, completedAt *time.Time) (Models.DailyAssignment, error) {
	var assignment Models.DailyAssignment
	err := s.DB.Preload("Child").Preload("Task").First(&assignment, assignmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Models.DailyAssignment{}, ErrNotFound
	}
	if err != nil {
		return Models.DailyAssignment{}, err
	}
	if assignment.Child.UserID != userID {
		return Models.DailyAssignment{}, ErrForbidden
	}

	assignment.IsCompleted = completed
	assignment.CompletedAt = completedAt
	err = s.DB.Model(&assignment).
		Select("is_completed", "completed_at").
		Updates(map[string]interface{}{
			"is_completed": completed,
			"completed_at": completedAt,
		}).Error
	if err != nil {
		return Models.DailyAssignment{}, err
	}
	return assignment, nil
}

// RunDailySweep materializes "today" for every child in the system. Failures
// are logged per child and the sweep carries on; each child's materialization
// is independent. Safe to invoke any number of times per day.
func (s *Service) RunDailySweep() (int, error) {
	var children []Models.Child
	if err := s.DB.Find(&children).Error; err != nil {
		return 0, err
	}

	today := s.Today()
	created := 0
	for _, child := range children {
		if err := s.EnsureForDate(child, today); err != nil {
			log.Printf("Sweep: failed to materialize %s for child %d: %v", today, child.ID, err)
			continue
		}
		created++
	}
	log.Printf("Sweep: materialized %s for %d/%d children", today, created, len(children))
	return created, nil
}

func (s *Service) resolveOwnedChild(childID, userID uint) (Models.Child, error) {
	var child Models.Child
	err := s.DB.First(&child, childID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Models.Child{}, ErrNotFound
	}
	if err != nil {
		return Models.Child{}, err
	}
	if child.UserID != userID {
		return Models.Child{}, ErrForbidden
	}
	return child, nil
}
