// Package crm defines the CRM-System record types as they travel over the
// wire. Field names follow the server's JSON contract.
package crm

// Role is the authenticated user's role. Only two exist; anything else is
// treated as least-privilege by the policy layer.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleSales Role = "SALES"
)

// Normalize upper-cases a raw role string from the server or session file.
func (r Role) Normalize() Role {
	switch r {
	case "admin", "Admin":
		return RoleAdmin
	case "sales", "Sales":
		return RoleSales
	default:
		return r
	}
}

// Profile is what GET /users/me returns.
type Profile struct {
	Role     string `json:"role"`
	FullName string `json:"fullName"`
}

// Customer is a customer account record.
type Customer struct {
	ID               int64  `json:"id,omitempty"`
	Name             string `json:"name" validate:"required"`
	Email            string `json:"email" validate:"nullable,email"`
	Phone            string `json:"phone"`
	Company          string `json:"company"`
	Address          string `json:"address"`
	Notes            string `json:"notes"`
	AssignedSalesRep string `json:"assignedSalesRep"`
	Status           string `json:"status" validate:"required,in=Active|Inactive"`
}

// Lead is a sales lead.
type Lead struct {
	ID               int64  `json:"id,omitempty"`
	Name             string `json:"name" validate:"required"`
	ContactInfo      string `json:"contactInfo"`
	Source           string `json:"source" validate:"required,in=Referral|Ads|Web"`
	Status           string `json:"status" validate:"required,in=New|Contacted|Converted|Lost"`
	AssignedSalesRep string `json:"assignedSalesRep"`
}

// Sale is a sales deal. Amount stays a float64 to match the server's JSON
// number; the server owns rounding.
type Sale struct {
	ID               int64   `json:"id,omitempty"`
	Product          string  `json:"product" validate:"required"`
	Amount           float64 `json:"amount" validate:"required,numeric"`
	Status           string  `json:"status" validate:"required,in=Proposal|Negotiation|Closed-Won|Closed-Lost"`
	AssignedSalesRep string  `json:"assignedSalesRep"`
	Date             string  `json:"date" validate:"nullable,date"`
}

// Task is a work item assigned to a user by display name. AssignedTo is
// free text, matched case-insensitively against the session's full name —
// there is no user foreign key in the upstream system.
type Task struct {
	ID          int64  `json:"id,omitempty"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate" validate:"nullable,date"`
	Priority    string `json:"priority" validate:"required,in=High|Medium|Low"`
	AssignedTo  string `json:"assignedTo"`
	Status      string `json:"status" validate:"required,in=Open|In Progress|Completed"`
}

// Purchase is a purchase order. The upstream entity is minimal: no id, no
// status, create-only.
type Purchase struct {
	Vendor string  `json:"vendor" validate:"required"`
	Amount float64 `json:"amount" validate:"required,numeric"`
}

// Task status values. "Open" and "In Progress" are the pending family;
// toggling flips between Open and Completed.
const (
	TaskOpen       = "Open"
	TaskInProgress = "In Progress"
	TaskCompleted  = "Completed"
)

// ToggledStatus returns the status a task moves to when its done-checkbox
// is flipped: Completed goes back to Open, anything else completes.
func ToggledStatus(current string) string {
	if current == TaskCompleted {
		return TaskOpen
	}
	return TaskCompleted
}

// DashboardStats is the admin dashboard payload (GET /dashboard).
type DashboardStats struct {
	TotalRevenue float64 `json:"totalRevenue"`
	TotalSales   int64   `json:"totalSales"`
}

// ProfitReport is the business report payload (GET /reports/profit).
type ProfitReport struct {
	TotalSales     float64 `json:"totalSales"`
	TotalPurchases float64 `json:"totalPurchases"`
	Profit         float64 `json:"profit"`
}
