package core

// Task is a caller-supplied work item description routed through a topology.
// The engine never mutates a Task; topologies that accumulate context must
// operate on a copy (see Context).
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status,omitempty"`
}

// Context returns a fresh mutable map seeded with the task fields. Pipeline
// style topologies enrich this copy stage by stage while the Task itself
// stays untouched.
func (t Task) Context() map[string]any {
	return map[string]any{
		"task_id":     t.ID,
		"title":       t.Title,
		"description": t.Description,
		"priority":    t.Priority,
	}
}
