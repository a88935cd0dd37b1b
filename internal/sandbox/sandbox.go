// Package sandbox is a local, self-contained implementation of the
// CRM-System REST surface. It exists for two reasons: the test suite runs
// the real client against it over httptest, and `crmctl sandbox` gives
// developers a working server without the upstream deployment.
//
// It reproduces the upstream wire contract faithfully — including the raw
// token string and the "Invalid credentials" login body — and performs no
// role-based filtering on its collections, exactly like the server this
// client was written for. Role enforcement is the client's concern here.
package sandbox

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"crmctl/internal/crm"
	"crmctl/pkg/logger"
)

// Server is a sandbox instance. Build one with New, then serve Handler().
type Server struct {
	store   *Store
	secret  string
	metrics *metrics
	router  chi.Router
}

// New assembles a sandbox over an open store.
func New(store *Store, jwtSecret string) *Server {
	s := &Server{
		store:   store,
		secret:  jwtSecret,
		metrics: newMetrics(),
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler, /api surface plus /metrics.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the sandbox on addr until the process exits.
func (s *Server) ListenAndServe(addr string) error {
	logger.L.Info().Str("addr", addr).Msg("sandbox listening")
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.metrics.middleware)

	r.Get("/metrics", s.metrics.handler().ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/register", s.handleRegister)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/users/me", s.handleMe)
			r.Get("/dashboard", s.handleDashboard)
			r.Get("/reports/profit", s.handleProfitReport)
			r.Post("/purchases", s.handleCreatePurchase)

			registerCollection(s, r, "/customers",
				func(c *crm.Customer, id int64) { c.ID = id }, true)
			registerCollection(s, r, "/leads",
				func(l *crm.Lead, id int64) { l.ID = id }, true)
			registerCollection(s, r, "/sales",
				func(sale *crm.Sale, id int64) { sale.ID = id }, false)
			registerCollection(s, r, "/tasks",
				func(t *crm.Task, id int64) { t.ID = id }, true)
		})
	})

	return r
}

// Seed loads demo accounts and records for interactive use. Credentials:
// admin@crm.local / admin123 and bob@crm.local / bob123.
func (s *Server) Seed() error {
	if _, exists := s.store.UserByEmail("admin@crm.local"); exists {
		return nil // already seeded
	}

	users := []struct {
		name, email, password string
		role                  crm.Role
	}{
		{"Ada Admin", "admin@crm.local", "admin123", crm.RoleAdmin},
		{"Bob Lee", "bob@crm.local", "bob123", crm.RoleSales},
	}
	for _, u := range users {
		hash, err := hashPassword(u.password)
		if err != nil {
			return err
		}
		if err := s.store.CreateUser(&User{
			FullName: u.name, Email: u.email, Password: hash, Role: string(u.role),
		}); err != nil {
			return err
		}
	}

	records := []interface{}{
		&crm.Customer{Name: "Initech", Email: "office@initech.test", Company: "Initech",
			AssignedSalesRep: "Bob Lee", Status: "Active"},
		&crm.Lead{Name: "Globex", ContactInfo: "info@globex.test", Source: "Web",
			Status: "New", AssignedSalesRep: "Bob Lee"},
		&crm.Sale{Product: "Annual subscription", Amount: 5000, Status: "Proposal",
			AssignedSalesRep: "Bob Lee", Date: "2026-01-15"},
		&crm.Task{Title: "Call Initech", Description: "quarterly renewal",
			DueDate: "2026-02-01", Priority: "High", AssignedTo: "Bob Lee", Status: crm.TaskOpen},
		&crm.Task{Title: "Prepare board deck", Priority: "Medium",
			AssignedTo: "Ada Admin", Status: crm.TaskOpen},
	}
	for _, rec := range records {
		if err := s.store.create(rec); err != nil {
			return err
		}
	}
	return nil
}
