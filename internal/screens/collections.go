package screens

import (
	"crmctl/internal/api"
	"crmctl/internal/crm"
	"crmctl/internal/session"
)

// NewCustomers builds the Customers screen. No client-side visibility
// filtering — the server returns the full collection for every role.
func NewCustomers(client *api.Client, sess session.Session) *ListScreen[crm.Customer] {
	return newListScreen[crm.Customer]("customers", client.Customers(), sess,
		func(c crm.Customer) int64 { return c.ID })
}

// NewLeads builds the Leads screen.
func NewLeads(client *api.Client, sess session.Session) *ListScreen[crm.Lead] {
	return newListScreen[crm.Lead]("leads", client.Leads(), sess,
		func(l crm.Lead) int64 { return l.ID })
}

// NewSales builds the Sales screen. The deals surface has no delete, so
// ListScreen.Delete reports the collection as non-deletable.
func NewSales(client *api.Client, sess session.Session) *ListScreen[crm.Sale] {
	return newListScreen[crm.Sale]("sales", client.Sales(), sess,
		func(s crm.Sale) int64 { return s.ID })
}
