package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/jsamuelsen11/taskboard/internal/domain/task"
	"github.com/jsamuelsen11/taskboard/internal/ports"
)

// Compile-time interface check.
var _ ports.TaskRepository = (*TaskRepository)(nil)

// TaskRepository stores tasks in a mutex-guarded map.
type TaskRepository struct {
	mu     sync.RWMutex
	tasks  map[int64]*task.Task
	nextID int64
}

// NewTaskRepository creates an empty in-memory task repository.
func NewTaskRepository() *TaskRepository {
	return &TaskRepository{tasks: make(map[int64]*task.Task)}
}

// FindByID returns a single active task by ID.
func (s *TaskRepository) FindByID(_ context.Context, id int64) (*task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t := s.tasks[id]
	if t == nil || t.Deleted() {
		return nil, notFound("task", id)
	}
	return cloneTask(t), nil
}

// List returns tasks matching the filter, ordered by creation time ascending
// with ID as tiebreak.
func (s *TaskRepository) List(_ context.Context, filter task.Filter) ([]task.Task, error) {
	s.mu.RLock()
	matched := make([]task.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if filter.Matches(t) {
			matched = append(matched, *cloneTask(t))
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b task.Task) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return paginate(matched, filter.Offset, filter.Limit), nil
}

// Create persists a new task and returns it with the assigned ID.
func (s *TaskRepository) Create(_ context.Context, t *task.Task) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.titleTakenLocked(t.ListID, t.Title, 0) {
		return nil, conflict("task title", t.Title)
	}

	s.nextID++
	rec := cloneTask(t)
	rec.ID = s.nextID
	s.tasks[rec.ID] = rec

	return cloneTask(rec), nil
}

// Update persists changes to an existing active task.
func (s *TaskRepository) Update(_ context.Context, t *task.Task) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.tasks[t.ID]
	if cur == nil || cur.Deleted() {
		return nil, notFound("task", t.ID)
	}
	if s.titleTakenLocked(t.ListID, t.Title, t.ID) {
		return nil, conflict("task title", t.Title)
	}

	rec := cloneTask(t)
	rec.CreatedAt = cur.CreatedAt
	rec.DeletedAt = nil
	s.tasks[rec.ID] = rec

	return cloneTask(rec), nil
}

// SoftDelete marks the task deleted without removing the entry.
func (s *TaskRepository) SoftDelete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.tasks[id]
	if cur == nil || cur.Deleted() {
		return notFound("task", id)
	}

	now := time.Now().UTC()
	cur.DeletedAt = &now
	cur.UpdatedAt = now
	return nil
}

// SoftDeleteByList marks all active tasks of the list deleted. Zero matching
// tasks is not an error.
func (s *TaskRepository) SoftDeleteByList(_ context.Context, listID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for _, t := range s.tasks {
		if t.ListID == listID && !t.Deleted() {
			ts := now
			t.DeletedAt = &ts
			t.UpdatedAt = now
		}
	}
	return nil
}

// ExistsWithTitle reports whether the list holds an active task other than
// excludeID with the given title.
func (s *TaskRepository) ExistsWithTitle(_ context.Context, listID int64, title string, excludeID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.titleTakenLocked(listID, title, excludeID), nil
}

// CountActive returns the number of active tasks in the list.
func (s *TaskRepository) CountActive(_ context.Context, listID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, t := range s.tasks {
		if t.ListID == listID && !t.Deleted() {
			count++
		}
	}
	return count, nil
}

func (s *TaskRepository) titleTakenLocked(listID int64, title string, excludeID int64) bool {
	for _, t := range s.tasks {
		if !t.Deleted() && t.ListID == listID && t.Title == title && t.ID != excludeID {
			return true
		}
	}
	return false
}

func cloneTask(t *task.Task) *task.Task {
	dup := *t
	if t.AssigneeID != nil {
		id := *t.AssigneeID
		dup.AssigneeID = &id
	}
	if t.DueDate != nil {
		ts := *t.DueDate
		dup.DueDate = &ts
	}
	if t.DeletedAt != nil {
		ts := *t.DeletedAt
		dup.DeletedAt = &ts
	}
	return &dup
}
