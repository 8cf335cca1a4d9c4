package task

// Filter holds optional filter criteria for listing tasks. Criteria combine
// with logical AND. Zero-value fields mean "no filter" for that dimension.
//
// IncludeDeleted is the explicit visibility switch: soft-deleted tasks are
// excluded unless it is set. Results are always ordered by creation time
// ascending with ID as tiebreak; pagination relies on that stable order.
type Filter struct {
	ListID         *int64
	Status         Status
	Priority       Priority
	AssigneeID     *int64
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// Matches reports whether the task satisfies every set criterion.
// It ignores Limit and Offset; slicing is the store's concern.
func (f Filter) Matches(t *Task) bool {
	if !f.IncludeDeleted && t.Deleted() {
		return false
	}
	if f.ListID != nil && t.ListID != *f.ListID {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.AssigneeID != nil && (t.AssigneeID == nil || *t.AssigneeID != *f.AssigneeID) {
		return false
	}
	return true
}
