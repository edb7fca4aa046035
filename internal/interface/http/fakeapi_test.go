package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/oksasatya/discount-catalog/internal/domain/entity"
)

// fakeAPI is an in-memory stand-in for the external discount/user API.
type fakeAPI struct {
	mu        sync.Mutex
	discounts []entity.Discount
	users     []entity.User
	calls     map[string]int
}

const (
	adminToken = "admin-token"
	userToken  = "user-token"
)

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{
		discounts: []entity.Discount{
			{ID: "65000000aaaaaaaaaaaaaaa1", Title: "Pizza night", Description: "Any large pizza", Code: "PIZZA20", PercentOff: 20, ValidUntil: "2025-01-01", Category: "Food"},
			{ID: "66000000aaaaaaaaaaaaaaa2", Title: "Running shoes", Description: "Sneakers", Code: "RUN50", PercentOff: 50, ValidUntil: "2024-06-01", Category: "Clothes"},
		},
		users: []entity.User{
			{ID: "admin-id", Name: "Admin", Email: "admin@example.com", IsAdmin: true},
			{ID: "user-id", Name: "Olena", Email: "user@example.com"},
		},
		calls: map[string]int{},
	}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func fail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/api")
	f.calls[r.Method+" "+path]++
	auth := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	switch {
	case r.Method == http.MethodPost && path == "/users/login":
		var creds entity.Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "secret" {
			fail(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		switch creds.Email {
		case "admin@example.com":
			writeJSON(w, http.StatusOK, entity.UserInfo{ID: "admin-id", Name: "Admin", Email: creds.Email, IsAdmin: true, Token: adminToken})
		case "user@example.com":
			writeJSON(w, http.StatusOK, entity.UserInfo{ID: "user-id", Name: "Olena", Email: creds.Email, Token: userToken})
		default:
			fail(w, http.StatusUnauthorized, "Invalid email or password")
		}
		return
	case r.Method == http.MethodPost && path == "/users":
		writeJSON(w, http.StatusCreated, entity.UserInfo{ID: "new-user", Name: "New", Email: "new@example.com", Token: userToken})
		return
	}

	if auth != adminToken && auth != userToken {
		fail(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	switch {
	case r.Method == http.MethodGet && path == "/discounts":
		writeJSON(w, http.StatusOK, f.discounts)
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/discounts/"):
		id := strings.TrimPrefix(path, "/discounts/")
		for _, d := range f.discounts {
			if d.ID == id {
				writeJSON(w, http.StatusOK, d)
				return
			}
		}
		fail(w, http.StatusNotFound, "Discount not found")
	case r.Method == http.MethodPost && path == "/discounts":
		var d entity.Discount
		_ = json.NewDecoder(r.Body).Decode(&d)
		if d.Code == "DUP" {
			fail(w, http.StatusBadRequest, "Discount code already exists")
			return
		}
		d.ID = "67000000aaaaaaaaaaaaaaa3"
		f.discounts = append(f.discounts, d)
		writeJSON(w, http.StatusCreated, d)
	case r.Method == http.MethodPut && strings.HasPrefix(path, "/discounts/"):
		var d entity.Discount
		_ = json.NewDecoder(r.Body).Decode(&d)
		writeJSON(w, http.StatusOK, d)
	case r.Method == http.MethodDelete && strings.HasPrefix(path, "/discounts/"):
		writeJSON(w, http.StatusOK, map[string]string{"message": "Discount removed"})
	case r.Method == http.MethodGet && path == "/users/profile":
		for _, u := range f.users {
			if (auth == adminToken) == u.IsAdmin {
				writeJSON(w, http.StatusOK, u)
				return
			}
		}
	case r.Method == http.MethodPut && path == "/users/profile":
		var u entity.User
		_ = json.NewDecoder(r.Body).Decode(&u)
		writeJSON(w, http.StatusOK, entity.UserInfo{ID: u.ID, Name: u.Name, Email: u.Email, Token: auth})
	case auth != adminToken:
		fail(w, http.StatusUnauthorized, "Not authorized as an admin")
	case r.Method == http.MethodGet && path == "/users":
		writeJSON(w, http.StatusOK, f.users)
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/users/"):
		id := strings.TrimPrefix(path, "/users/")
		for _, u := range f.users {
			if u.ID == id {
				writeJSON(w, http.StatusOK, u)
				return
			}
		}
		fail(w, http.StatusNotFound, "User not found")
	case r.Method == http.MethodPut && strings.HasPrefix(path, "/users/"):
		var u entity.User
		_ = json.NewDecoder(r.Body).Decode(&u)
		u.ID = strings.TrimPrefix(path, "/users/")
		writeJSON(w, http.StatusOK, u)
	case r.Method == http.MethodDelete && strings.HasPrefix(path, "/users/"):
		writeJSON(w, http.StatusOK, map[string]string{"message": "User removed"})
	default:
		fail(w, http.StatusNotFound, "Not found")
	}
}
