package screens

import (
	"context"

	"crmctl/internal/api"
	"crmctl/internal/crm"
	"crmctl/internal/policy"
	"crmctl/internal/session"
	"crmctl/pkg/logger"
)

// TaskScreen is the tasks page. It is the one screen with client-side
// ownership filtering, and the one place SALES holds any mutation right:
// toggling the status of its own tasks.
type TaskScreen struct {
	*ListScreen[crm.Task]
}

// NewTasks builds the Tasks screen for the session.
func NewTasks(client *api.Client, sess session.Session) *TaskScreen {
	ls := newListScreen[crm.Task]("tasks", client.Tasks(), sess,
		func(t crm.Task) int64 { return t.ID })
	ls.visible = func(all []crm.Task) []crm.Task {
		return policy.VisibleTasks(sess.Role, sess.FullName, all)
	}
	return &TaskScreen{ListScreen: ls}
}

// ByStatus narrows the loaded list to one status locally. "All" (or empty)
// keeps everything.
func (s *TaskScreen) ByStatus(status string) []crm.Task {
	if status == "" || status == "All" {
		return s.Records()
	}
	return s.Filtered(func(t crm.Task) bool { return t.Status == status })
}

// Pending returns loaded tasks not yet completed.
func (s *TaskScreen) Pending() []crm.Task {
	return s.Filtered(func(t crm.Task) bool { return t.Status != crm.TaskCompleted })
}

// Completed returns loaded tasks that are done.
func (s *TaskScreen) Completed() []crm.Task {
	return s.Filtered(func(t crm.Task) bool { return t.Status == crm.TaskCompleted })
}

// Toggle flips a task between open and completed via a whole-record update.
// SALES may only toggle tasks it owns; the screen checks the policy even
// though foreign tasks are filtered out of its list anyway.
func (s *TaskScreen) Toggle(ctx context.Context, id int64) (crm.Task, error) {
	var zero crm.Task

	if !policy.CanMutate(s.sess.Role, policy.ActionToggleStatus) {
		return zero, ErrForbidden
	}

	task, ok := s.Find(id)
	if !ok {
		return zero, api.ErrNotFound
	}
	if !policy.OwnsTask(s.sess.Role, s.sess.FullName, task) {
		return zero, ErrForbidden
	}

	task.Status = crm.ToggledStatus(task.Status)

	updated, err := s.res.Update(ctx, id, task)
	if err != nil {
		logger.L.Warn().Err(err).Str("screen", s.name).Msg("toggle failed")
		return zero, err
	}
	s.replace(id, updated)
	return updated, nil
}
