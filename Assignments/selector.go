package Assignments

import (
	"KidGrow/Models"
)

// SelectDailyTasks picks the tasks a child receives on a given date from the
// eligible catalog entries for its age group. Tasks are partitioned by day
// slot (1 = morning, 2 = afternoon) and each non-empty slot contributes the
// entry at index dayOfYear mod subset size, so the same (age group, date)
// pair always yields the same tasks and a slot's pool is cycled through
// roughly evenly over the year. Day-of-year is 1-based (Jan 1st -> 1).
//
// An empty catalog yields an empty result; a single-task slot repeats that
// task every day. Pure function, no error conditions.
func SelectDailyTasks(tasks []Models.Task, date Models.DateOnly) []Models.Task {
	var slot1, slot2 []Models.Task
	for _, t := range tasks {
		switch t.DaySlot {
		case 2:
			slot2 = append(slot2, t)
		default:
			slot1 = append(slot1, t)
		}
	}

	dayOfYear := date.DayOfYear()
	var selected []Models.Task
	if len(slot1) > 0 {
		selected = append(selected, slot1[dayOfYear%len(slot1)])
	}
	if len(slot2) > 0 {
		selected = append(selected, slot2[dayOfYear%len(slot2)])
	}
	return selected
}
