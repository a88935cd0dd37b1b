package screens

import (
	"context"

	"crmctl/internal/api"
	"crmctl/internal/crm"
	"crmctl/internal/policy"
	"crmctl/internal/session"
)

// DashboardScreen is the landing page: a task summary for every role, plus
// revenue aggregates for admins.
type DashboardScreen struct {
	client *api.Client
	sess   session.Session
	tasks  *TaskScreen
}

// NewDashboard builds the dashboard for the session.
func NewDashboard(client *api.Client, sess session.Session) *DashboardScreen {
	return &DashboardScreen{
		client: client,
		sess:   sess,
		tasks:  NewTasks(client, sess),
	}
}

// Summary is what the dashboard shows.
type Summary struct {
	Tasks     []crm.Task
	Pending   []crm.Task
	Completed []crm.Task

	// Stats is nil for non-admin sessions.
	Stats *crm.DashboardStats
}

// Load fetches the visible tasks and, for admins, the revenue stats. A
// failed stats read degrades to a task-only dashboard rather than failing
// the whole screen.
func (s *DashboardScreen) Load(ctx context.Context) (Summary, error) {
	if err := s.tasks.Load(ctx); err != nil {
		return Summary{}, err
	}

	sum := Summary{
		Tasks:     s.tasks.Records(),
		Pending:   s.tasks.Pending(),
		Completed: s.tasks.Completed(),
	}

	if s.sess.Role.Normalize() == crm.RoleAdmin && policy.CanViewNavItem(s.sess.Role, policy.NavSales) {
		if stats, err := s.client.DashboardStats(ctx); err == nil {
			sum.Stats = &stats
		}
	}
	return sum, nil
}
