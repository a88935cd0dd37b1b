package sandbox

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"crmctl/internal/crm"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Bad id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// ------------------- Auth -------------------

type credentials struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// handleLogin mirrors the upstream contract exactly: a 200 with the raw
// token string on success, a 200 with the literal "Invalid credentials"
// body on failure. The client's hardened decode is tested against this
// very shape.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if !readJSON(w, r, &in) {
		return
	}

	user, ok := s.store.UserByEmail(in.Email)
	if !ok || !checkPassword(user.Password, in.Password) {
		w.Write([]byte("Invalid credentials"))
		return
	}

	token, err := s.generateToken(user.Email)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	w.Write([]byte(token))
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if !readJSON(w, r, &in) {
		return
	}
	if in.Email == "" || in.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}
	if _, exists := s.store.UserByEmail(in.Email); exists {
		http.Error(w, "email already registered", http.StatusConflict)
		return
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	role := string(crm.Role(in.Role).Normalize())
	if role != string(crm.RoleAdmin) {
		role = string(crm.RoleSales)
	}

	user := &User{FullName: in.FullName, Email: in.Email, Password: hash, Role: role}
	if err := s.store.CreateUser(user); err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(r))
}

// ------------------- Collections -------------------

// registerCollection mounts list/create/update (and optionally delete)
// routes for one record type. setID stamps the URL id onto the incoming
// record before the whole-row replacement.
func registerCollection[T any](s *Server, r chi.Router, path string, setID func(*T, int64), withDelete bool) {
	r.Get(path, func(w http.ResponseWriter, req *http.Request) {
		var out []T
		if err := s.store.listAll(&out); err != nil {
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if out == nil {
			out = []T{}
		}
		writeJSON(w, http.StatusOK, out)
	})

	r.Post(path, func(w http.ResponseWriter, req *http.Request) {
		var rec T
		if !readJSON(w, req, &rec) {
			return
		}
		if err := s.store.create(&rec); err != nil {
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	})

	r.Put(path+"/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, ok := pathID(w, req)
		if !ok {
			return
		}
		var existing T
		if !s.store.byID(id, &existing) {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}

		var rec T
		if !readJSON(w, req, &rec) {
			return
		}
		setID(&rec, id)
		if err := s.store.save(&rec); err != nil {
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	})

	if !withDelete {
		return
	}
	r.Delete(path+"/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, ok := pathID(w, req)
		if !ok {
			return
		}
		var model T
		if !s.store.deleteByID(&model, id) {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}

// ------------------- Purchases & reports -------------------

func (s *Server) handleCreatePurchase(w http.ResponseWriter, r *http.Request) {
	var in crm.Purchase
	if !readJSON(w, r, &in) {
		return
	}
	row := purchaseRow{Vendor: in.Vendor, Amount: in.Amount}
	if err := s.store.create(&row); err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, crm.DashboardStats{
		TotalRevenue: s.store.TotalRevenue(),
		TotalSales:   s.store.TotalSales(),
	})
}

func (s *Server) handleProfitReport(w http.ResponseWriter, r *http.Request) {
	sales := s.store.TotalRevenue()
	purchases := s.store.TotalPurchases()
	writeJSON(w, http.StatusOK, crm.ProfitReport{
		TotalSales:     sales,
		TotalPurchases: purchases,
		Profit:         sales - purchases,
	})
}
