package domain

import "time"

// Partition splits tasks into those not overdue and those overdue on now's
// calendar day, keeping the input order within each group.
func Partition(tasks []Task, now time.Time) (notOverdue, overdue []Task) {
	for _, t := range tasks {
		if t.IsOverdue(now) {
			overdue = append(overdue, t)
		} else {
			notOverdue = append(notOverdue, t)
		}
	}
	return notOverdue, overdue
}

// Order returns the tasks to render for filter, given tasks in creation order.
//
//   - Uncompleted: overdue tasks first, then the rest, each group newest first.
//   - Completed: completed tasks, newest first.
//   - All: completed tasks newest first, then uncompleted tasks newest first.
//
// The input slice is not modified.
func Order(tasks []Task, filter Filter, now time.Time) []Task {
	switch filter {
	case FilterUncompleted:
		notOverdue, overdue := Partition(selectTasks(tasks, FilterUncompleted), now)
		return reversed(append(notOverdue, overdue...))
	case FilterCompleted:
		return reversed(selectTasks(tasks, FilterCompleted))
	default:
		completed := reversed(selectTasks(tasks, FilterCompleted))
		uncompleted := reversed(selectTasks(tasks, FilterUncompleted))
		return append(completed, uncompleted...)
	}
}

func selectTasks(tasks []Task, filter Filter) []Task {
	selected := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.Matches(t) {
			selected = append(selected, t)
		}
	}
	return selected
}

func reversed(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[len(tasks)-1-i] = t
	}
	return out
}
