package tasklist

import (
	"math"

	"github.com/jsamuelsen11/taskboard/internal/domain/task"
)

// Stats holds derived completion statistics for one task list.
// It is computed on demand and never persisted.
type Stats struct {
	ListID            int64
	Total             int
	Pending           int
	InProgress        int
	Completed         int
	Cancelled         int
	CompletionPercent float64
}

// ComputeStats derives completion statistics from the list's tasks.
// Soft-deleted tasks are ignored. CompletionPercent is completed/total*100
// rounded half-up to two decimals, and 0 when the list has no active tasks.
func ComputeStats(listID int64, tasks []task.Task) Stats {
	s := Stats{ListID: listID}

	for i := range tasks {
		t := &tasks[i]
		if t.Deleted() {
			continue
		}
		s.Total++
		switch t.Status {
		case task.StatusPending:
			s.Pending++
		case task.StatusInProgress:
			s.InProgress++
		case task.StatusCompleted:
			s.Completed++
		case task.StatusCancelled:
			s.Cancelled++
		}
	}

	if s.Total > 0 {
		percent := float64(s.Completed) / float64(s.Total) * 100
		s.CompletionPercent = math.Round(percent*100) / 100
	}
	return s
}
