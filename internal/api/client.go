// Package api is the REST client for the CRM-System server.
//
// It covers the full consumed surface: login/register/profile, the five
// record collections, and the dashboard/report reads. Calls carry the
// session's bearer token and are bounded by the configured timeout. There
// are no automatic retries — failures surface once and the screens decide
// what state to keep.
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"crmctl/internal/crm"
	"crmctl/pkg/httpx"
)

// TokenFunc supplies the current bearer token, or "" when logged out.
// Decoupling the client from the session store keeps it testable.
type TokenFunc func() string

// Client talks to one CRM server.
type Client struct {
	baseURL string
	timeout time.Duration
	token   TokenFunc
}

// New builds a client for baseURL (e.g. "http://localhost:8080/api").
func New(baseURL string, timeout time.Duration, token TokenFunc) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		token:   token,
	}
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

// ------------------- Auth -------------------

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token.
//
// The upstream contract is fragile: the server answers 200 with the raw
// token string, or 200 with a body prefixed "Invalid" on bad credentials.
// That sniffing stays contained here — callers only ever see a token or
// ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	resp, err := httpx.Post(c.url("/login")).
		WithContext(ctx).
		Timeout(c.timeout).
		Body(loginRequest{Email: email, Password: password}).
		Send()
	if err != nil {
		return "", err
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", ErrInvalidCredentials
	}
	if !resp.OK() {
		return "", &APIError{Status: resp.StatusCode, Body: resp.Text()}
	}

	token := strings.TrimSpace(strings.Trim(resp.Text(), `"`))
	if token == "" || strings.HasPrefix(token, "Invalid") {
		return "", ErrInvalidCredentials
	}
	return token, nil
}

// Me fetches the identity behind a token. The token is explicit because
// login calls Me before anything is persisted.
func (c *Client) Me(ctx context.Context, token string) (crm.Profile, error) {
	var p crm.Profile

	resp, err := httpx.Get(c.url("/users/me")).
		WithContext(ctx).
		Timeout(c.timeout).
		Bearer(token).
		Send()
	if err != nil {
		return p, err
	}
	if err := decodeError(resp); err != nil {
		return p, err
	}
	if err := resp.JSON(&p); err != nil {
		return p, err
	}
	return p, nil
}

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register creates a new user account. The role is fixed at registration
// and immutable from the client afterwards.
func (c *Client) Register(ctx context.Context, fullName, email, password string, role crm.Role) error {
	resp, err := httpx.Post(c.url("/register")).
		WithContext(ctx).
		Timeout(c.timeout).
		Body(registerRequest{FullName: fullName, Email: email, Password: password, Role: string(role)}).
		Send()
	if err != nil {
		return err
	}
	return decodeError(resp)
}

// ------------------- Collections -------------------

// Customers is the /customers collection.
func (c *Client) Customers() DeletableCollection[crm.Customer] {
	return DeletableCollection[crm.Customer]{Collection[crm.Customer]{client: c, path: "/customers"}}
}

// Leads is the /leads collection.
func (c *Client) Leads() DeletableCollection[crm.Lead] {
	return DeletableCollection[crm.Lead]{Collection[crm.Lead]{client: c, path: "/leads"}}
}

// Sales is the /sales collection. The surface exposes no DELETE for deals,
// so this collection has no Delete.
func (c *Client) Sales() Collection[crm.Sale] {
	return Collection[crm.Sale]{client: c, path: "/sales"}
}

// Tasks is the /tasks collection.
func (c *Client) Tasks() DeletableCollection[crm.Task] {
	return DeletableCollection[crm.Task]{Collection[crm.Task]{client: c, path: "/tasks"}}
}

// CreatePurchase records a purchase order. Purchases are create-only on
// this surface.
func (c *Client) CreatePurchase(ctx context.Context, p crm.Purchase) error {
	resp, err := httpx.Post(c.url("/purchases")).
		WithContext(ctx).
		Timeout(c.timeout).
		Bearer(c.token()).
		Body(p).
		Send()
	if err != nil {
		return err
	}
	return decodeError(resp)
}

// ------------------- Reports -------------------

// DashboardStats returns the admin dashboard aggregates.
func (c *Client) DashboardStats(ctx context.Context) (crm.DashboardStats, error) {
	var stats crm.DashboardStats
	err := c.getJSON(ctx, "/dashboard", &stats)
	return stats, err
}

// ProfitReport returns the sales-vs-purchases business report.
func (c *Client) ProfitReport(ctx context.Context) (crm.ProfitReport, error) {
	var report crm.ProfitReport
	err := c.getJSON(ctx, "/reports/profit", &report)
	return report, err
}

func (c *Client) getJSON(ctx context.Context, path string, dest interface{}) error {
	resp, err := httpx.Get(c.url(path)).
		WithContext(ctx).
		Timeout(c.timeout).
		Bearer(c.token()).
		Send()
	if err != nil {
		return err
	}
	if err := decodeError(resp); err != nil {
		return err
	}
	return resp.JSON(dest)
}

// decodeError maps a non-2xx response to the error taxonomy.
func decodeError(resp *httpx.Response) error {
	switch {
	case resp.OK():
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	default:
		return &APIError{Status: resp.StatusCode, Body: resp.Text()}
	}
}
