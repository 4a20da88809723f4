package Assignments

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"KidGrow/Models"
)

func catalogTask(id uint, title string, daySlot int) Models.Task {
	return Models.Task{
		Model:   gorm.Model{ID: id},
		Title:   title,
		Section: Models.SectionTask,
		DaySlot: daySlot,
	}
}

func TestSelectDailyTasksDeterministic(t *testing.T) {
	tasks := []Models.Task{
		catalogTask(1, "Block tower", 1),
		catalogTask(2, "Animal sounds", 1),
		catalogTask(3, "Ball rolling", 1),
		catalogTask(4, "Shape sorter", 2),
		catalogTask(5, "Dance break", 2),
	}
	date := Models.NewDateOnly(2026, time.March, 9)

	first := SelectDailyTasks(tasks, date)
	for i := 0; i < 10; i++ {
		again := SelectDailyTasks(tasks, date)
		if len(again) != len(first) {
			t.Fatalf("run %d returned %d tasks, want %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j].ID != first[j].ID {
				t.Fatalf("run %d picked task %d at position %d, want %d", i, again[j].ID, j, first[j].ID)
			}
		}
	}
}

func TestSelectDailyTasksRotation(t *testing.T) {
	tasks := []Models.Task{
		catalogTask(1, "Block tower", 1),
		catalogTask(2, "Animal sounds", 1),
		catalogTask(3, "Ball rolling", 1),
	}

	// Jan 4th is day-of-year 4; 4 mod 3 = 1, so the second task wins.
	date := Models.NewDateOnly(2026, time.January, 4)
	selected := SelectDailyTasks(tasks, date)
	if len(selected) != 1 {
		t.Fatalf("expected 1 task, got %d", len(selected))
	}
	if selected[0].ID != 2 {
		t.Fatalf("day 4 over 3 tasks picked task %d, want 2", selected[0].ID)
	}

	// Three consecutive days cycle through all three tasks.
	seen := map[uint]bool{}
	for offset := 0; offset < 3; offset++ {
		picked := SelectDailyTasks(tasks, date.AddDays(offset))
		if len(picked) != 1 {
			t.Fatalf("offset %d: expected 1 task, got %d", offset, len(picked))
		}
		seen[picked[0].ID] = true
	}
	if len(seen) != 3 {
		t.Fatalf("3 consecutive days covered %d distinct tasks, want 3", len(seen))
	}
}

func TestSelectDailyTasksSlotPartition(t *testing.T) {
	tasks := []Models.Task{
		catalogTask(1, "Story retelling", 1),
		catalogTask(2, "Obstacle course", 1),
		catalogTask(3, "Memory pairs", 2),
	}
	selected := SelectDailyTasks(tasks, Models.NewDateOnly(2026, time.June, 15))
	if len(selected) != 2 {
		t.Fatalf("expected one task per slot, got %d", len(selected))
	}
	if selected[0].DaySlot != 1 || selected[1].DaySlot != 2 {
		t.Fatalf("slot order wrong: %d, %d", selected[0].DaySlot, selected[1].DaySlot)
	}
	// The single afternoon task repeats every day.
	if selected[1].ID != 3 {
		t.Fatalf("afternoon slot picked task %d, want 3", selected[1].ID)
	}
}

func TestSelectDailyTasksEmptyCatalog(t *testing.T) {
	if got := SelectDailyTasks(nil, Models.NewDateOnly(2026, time.January, 1)); len(got) != 0 {
		t.Fatalf("empty catalog yielded %d tasks", len(got))
	}
}
