package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/jsamuelsen11/taskboard/internal/domain/tasklist"
	"github.com/jsamuelsen11/taskboard/internal/ports"
)

// Compile-time interface check.
var _ ports.TaskListRepository = (*TaskListRepository)(nil)

// TaskListRepository stores task lists in a mutex-guarded map.
type TaskListRepository struct {
	mu     sync.RWMutex
	lists  map[int64]*tasklist.TaskList
	nextID int64
}

// NewTaskListRepository creates an empty in-memory task-list repository.
func NewTaskListRepository() *TaskListRepository {
	return &TaskListRepository{lists: make(map[int64]*tasklist.TaskList)}
}

// FindByID returns a single active list by ID.
func (s *TaskListRepository) FindByID(_ context.Context, id int64) (*tasklist.TaskList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l := s.lists[id]
	if l == nil || l.Deleted() {
		return nil, notFound("task list", id)
	}
	return cloneList(l), nil
}

// FindByIDIncludeDeleted returns a list by ID regardless of soft deletion.
func (s *TaskListRepository) FindByIDIncludeDeleted(_ context.Context, id int64) (*tasklist.TaskList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l := s.lists[id]
	if l == nil {
		return nil, notFound("task list", id)
	}
	return cloneList(l), nil
}

// List returns all active lists ordered by creation time ascending.
func (s *TaskListRepository) List(_ context.Context) ([]tasklist.TaskList, error) {
	s.mu.RLock()
	out := make([]tasklist.TaskList, 0, len(s.lists))
	for _, l := range s.lists {
		if !l.Deleted() {
			out = append(out, *cloneList(l))
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b tasklist.TaskList) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

// Create persists a new list and returns it with the assigned ID.
func (s *TaskListRepository) Create(_ context.Context, list *tasklist.TaskList) (*tasklist.TaskList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.titleTakenLocked(list.Title, 0) {
		return nil, conflict("task list title", list.Title)
	}

	s.nextID++
	rec := cloneList(list)
	rec.ID = s.nextID
	s.lists[rec.ID] = rec

	return cloneList(rec), nil
}

// Update persists changes to an existing active list.
func (s *TaskListRepository) Update(_ context.Context, list *tasklist.TaskList) (*tasklist.TaskList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.lists[list.ID]
	if cur == nil || cur.Deleted() {
		return nil, notFound("task list", list.ID)
	}
	if s.titleTakenLocked(list.Title, list.ID) {
		return nil, conflict("task list title", list.Title)
	}

	rec := cloneList(list)
	rec.CreatedAt = cur.CreatedAt
	rec.DeletedAt = nil
	s.lists[rec.ID] = rec

	return cloneList(rec), nil
}

// SoftDelete marks the list deleted without removing the entry.
func (s *TaskListRepository) SoftDelete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.lists[id]
	if cur == nil || cur.Deleted() {
		return notFound("task list", id)
	}

	now := time.Now().UTC()
	cur.DeletedAt = &now
	cur.UpdatedAt = now
	return nil
}

// ExistsWithTitle reports whether an active list other than excludeID holds
// the title.
func (s *TaskListRepository) ExistsWithTitle(_ context.Context, title string, excludeID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.titleTakenLocked(title, excludeID), nil
}

func (s *TaskListRepository) titleTakenLocked(title string, excludeID int64) bool {
	for _, l := range s.lists {
		if !l.Deleted() && l.Title == title && l.ID != excludeID {
			return true
		}
	}
	return false
}

func cloneList(l *tasklist.TaskList) *tasklist.TaskList {
	dup := *l
	if l.DeletedAt != nil {
		ts := *l.DeletedAt
		dup.DeletedAt = &ts
	}
	return &dup
}
