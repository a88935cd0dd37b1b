package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"crmctl/internal/crm"
)

func TestNavItemsPerRole(t *testing.T) {
	assert.Equal(t,
		[]NavItem{NavDashboard, NavCustomers, NavLeads, NavTasks, NavSales, NavPurchases},
		NavItems(crm.RoleAdmin))

	assert.Equal(t, []NavItem{NavDashboard, NavTasks}, NavItems(crm.RoleSales))
}

func TestCanViewNavItemFailsClosed(t *testing.T) {
	assert.True(t, CanViewNavItem(crm.RoleAdmin, NavCustomers))

	// Every non-admin role, including garbage, gets the least-privilege set.
	for _, role := range []crm.Role{crm.RoleSales, "MANAGER", "", "root"} {
		assert.False(t, CanViewNavItem(role, NavCustomers), "role %q", role)
		assert.True(t, CanViewNavItem(role, NavDashboard), "role %q", role)
		assert.True(t, CanViewNavItem(role, NavTasks), "role %q", role)
	}
}

func TestVisibleTasksAdminIsIdentity(t *testing.T) {
	tasks := []crm.Task{
		{ID: 3, Title: "c", AssignedTo: "Amy Chen"},
		{ID: 1, Title: "a", AssignedTo: ""},
		{ID: 2, Title: "b", AssignedTo: "Bob Lee"},
	}

	got := VisibleTasks(crm.RoleAdmin, "whoever", tasks)
	assert.Equal(t, tasks, got, "admin view must be the identity, order preserved")
}

func TestVisibleTasksSalesOwnership(t *testing.T) {
	tasks := []crm.Task{
		{ID: 1, AssignedTo: "Jane Doe"},
		{ID: 2, AssignedTo: "jane doe"},   // case-insensitive match
		{ID: 3, AssignedTo: " Jane Doe "}, // trimmed match
		{ID: 4, AssignedTo: "Amy Chen"},
		{ID: 5, AssignedTo: ""}, // unassigned is never visible to SALES
	}

	got := VisibleTasks(crm.RoleSales, "Jane Doe", tasks)

	ids := make([]int64, 0, len(got))
	for _, task := range got {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []int64{1, 2, 3}, ids)
}

func TestVisibleTasksBobLeeScenario(t *testing.T) {
	tasks := []crm.Task{
		{AssignedTo: "Bob Lee", Status: crm.TaskOpen},
		{AssignedTo: "Amy Chen", Status: crm.TaskOpen},
	}

	got := VisibleTasks(crm.RoleSales, "Bob Lee", tasks)
	assert.Len(t, got, 1)
	assert.Equal(t, "Bob Lee", got[0].AssignedTo)
}

func TestVisibleTasksUnknownRoleTreatedAsSales(t *testing.T) {
	tasks := []crm.Task{{AssignedTo: "Jane Doe"}, {AssignedTo: "Amy Chen"}}

	got := VisibleTasks("INTERN", "Jane Doe", tasks)
	assert.Len(t, got, 1)
}

func TestCanMutate(t *testing.T) {
	all := []Action{ActionCreate, ActionEdit, ActionDelete, ActionToggleStatus}

	for _, a := range all {
		assert.True(t, CanMutate(crm.RoleAdmin, a), "admin %s", a)
	}

	assert.True(t, CanMutate(crm.RoleSales, ActionToggleStatus))
	assert.False(t, CanMutate(crm.RoleSales, ActionCreate))
	assert.False(t, CanMutate(crm.RoleSales, ActionEdit))
	assert.False(t, CanMutate(crm.RoleSales, ActionDelete))

	for _, a := range all {
		assert.False(t, CanMutate("MANAGER", a), "unknown role %s", a)
	}
}

func TestOwnsTask(t *testing.T) {
	task := crm.Task{AssignedTo: "Bob Lee"}

	assert.True(t, OwnsTask(crm.RoleAdmin, "someone else", task))
	assert.True(t, OwnsTask(crm.RoleSales, "bob lee", task))
	assert.False(t, OwnsTask(crm.RoleSales, "Amy Chen", task))
	assert.False(t, OwnsTask(crm.RoleSales, "Bob Lee", crm.Task{AssignedTo: ""}))
}

func TestInitials(t *testing.T) {
	cases := map[string]string{
		"Jane Doe":           "JD",
		"Madonna":            "M",
		"":                   "",
		"  bob   lee  ":      "BL",
		"Ada Lovelace Smith": "AL", // capped at two
	}
	for in, want := range cases {
		assert.Equal(t, want, Initials(in), "Initials(%q)", in)
	}
}
