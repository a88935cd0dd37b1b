// Package policy is the role-based authorization model for crmctl.
//
// Everything here is a pure function of (role, user name, record) — no
// hidden state — so the same rules gate navigation, data visibility and
// mutation rights everywhere without being re-implemented per screen.
// Hidden or disabled commands are a courtesy; these functions are the
// authoritative check.
package policy

import (
	"strings"

	"crmctl/internal/crm"
)

// NavItem is a top-level navigation destination.
type NavItem string

const (
	NavDashboard NavItem = "Dashboard"
	NavCustomers NavItem = "Customers"
	NavLeads     NavItem = "Leads"
	NavTasks     NavItem = "Tasks"
	NavSales     NavItem = "Sales"
	NavPurchases NavItem = "Purchases"
)

// Action is a mutation kind requested on a collection.
type Action string

const (
	ActionCreate       Action = "create"
	ActionEdit         Action = "edit"
	ActionDelete       Action = "delete"
	ActionToggleStatus Action = "toggleStatus"
)

var adminNav = []NavItem{NavDashboard, NavCustomers, NavLeads, NavTasks, NavSales, NavPurchases}

// salesNav is also the fallback for unknown roles: fail closed toward
// least privilege.
var salesNav = []NavItem{NavDashboard, NavTasks}

// NavItems returns the navigation set visible to the role.
func NavItems(role crm.Role) []NavItem {
	if role.Normalize() == crm.RoleAdmin {
		return adminNav
	}
	return salesNav
}

// CanViewNavItem reports whether the role's navigation includes item.
func CanViewNavItem(role crm.Role, item NavItem) bool {
	for _, n := range NavItems(role) {
		if n == item {
			return true
		}
	}
	return false
}

// VisibleTasks filters a fetched task list down to what the session may
// observe. ADMIN sees everything, order preserved. SALES sees only tasks
// whose AssignedTo matches its own full name, compared case-insensitively
// after trimming; tasks with no assignee are excluded for SALES.
//
// Task is the only entity with client-side ownership filtering — every
// other collection is returned by the server already in scope.
func VisibleTasks(role crm.Role, currentUserName string, tasks []crm.Task) []crm.Task {
	if role.Normalize() == crm.RoleAdmin {
		return tasks
	}

	me := foldName(currentUserName)
	out := make([]crm.Task, 0, len(tasks))
	for _, t := range tasks {
		assignee := foldName(t.AssignedTo)
		if assignee == "" {
			continue
		}
		if assignee == me {
			out = append(out, t)
		}
	}
	return out
}

// CanMutate reports whether the role may perform action on any collection.
// ADMIN may do everything. SALES may only toggle task status — ownership of
// the specific task is checked separately via OwnsTask. Unknown roles may
// do nothing.
func CanMutate(role crm.Role, action Action) bool {
	switch role.Normalize() {
	case crm.RoleAdmin:
		return true
	case crm.RoleSales:
		return action == ActionToggleStatus
	default:
		return false
	}
}

// OwnsTask reports whether the task would be visible to the user under
// VisibleTasks — the ownership precondition for a SALES status toggle.
func OwnsTask(role crm.Role, currentUserName string, t crm.Task) bool {
	if role.Normalize() == crm.RoleAdmin {
		return true
	}
	assignee := foldName(t.AssignedTo)
	return assignee != "" && assignee == foldName(currentUserName)
}

// Initials derives up to two uppercase characters from the first letters of
// the whitespace-separated tokens of displayName. Display only — never an
// identity decision.
func Initials(displayName string) string {
	var initials []rune
	for _, token := range strings.Fields(displayName) {
		first := []rune(strings.ToUpper(token))[0]
		initials = append(initials, first)
		if len(initials) == 2 {
			break
		}
	}
	return string(initials)
}

// foldName normalizes a display name once at the comparison boundary:
// trim, then case-fold. Names are the only join key the upstream system
// has; collisions remain a known risk.
func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
