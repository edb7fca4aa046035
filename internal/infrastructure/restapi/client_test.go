package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/discount-catalog/internal/domain/entity"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 2*time.Second, nil)
}

func TestDiscountListAttachesBearer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/discounts", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"_id":"1","title":"Pizza","percentOff":20,"validUntil":"2025-01-01"}]`))
	})

	list, err := NewDiscountRepository(c).List(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "1", list[0].ID)
	assert.Equal(t, 20, list[0].PercentOff)
}

func TestNoAuthorizationWithoutToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	})
	list, err := NewDiscountRepository(c).List(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, list)
}

func TestErrorPrefersServerMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Not authorized, token failed"}`))
	})

	_, err := NewDiscountRepository(c).Get(context.Background(), "bad", "1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Not authorized, token failed", err.Error())
}

func TestErrorFallsBackToStatusText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<html>oops</html>`))
	})

	err := NewDiscountRepository(c).Delete(context.Background(), "t", "1")
	assert.EqualError(t, err, "Request failed with status code 500")
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second, nil)
	_, err := NewUserRepository(c).List(context.Background(), "t")
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "GET /api/users", te.Op)
}

func TestCreateDiscountSendsJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var d entity.Discount
		require.NoError(t, json.NewDecoder(r.Body).Decode(&d))
		assert.Equal(t, "RUN50", d.Code)
		d.ID = "new"
		_ = json.NewEncoder(w).Encode(d)
	})

	got, err := NewDiscountRepository(c).Create(context.Background(), "t", &entity.Discount{Code: "RUN50", PercentOff: 50})
	require.NoError(t, err)
	assert.Equal(t, "new", got.ID)
}

func TestUpdateDiscountUsesID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/discounts/abc", r.URL.Path)
		_, _ = w.Write([]byte(`{"_id":"abc"}`))
	})
	got, err := NewDiscountRepository(c).Update(context.Background(), "t", &entity.Discount{ID: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "abc", got.ID)
}

func TestUserEndpoints(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "POST /api/users/login":
			var creds entity.Credentials
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			assert.Equal(t, "a@b.c", creds.Email)
			_, _ = w.Write([]byte(`{"_id":"u1","name":"Ann","email":"a@b.c","isAdmin":true,"token":"jwt"}`))
		case "POST /api/users":
			_, _ = w.Write([]byte(`{"_id":"u2","name":"Bob","email":"b@b.c","token":"jwt2"}`))
		case "GET /api/users/profile":
			assert.Equal(t, "Bearer jwt", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"_id":"u1","name":"Ann","email":"a@b.c"}`))
		case "PUT /api/users/u2":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.NotContains(t, body, "password")
			assert.Equal(t, true, body["isAdmin"])
			_, _ = w.Write([]byte(`{"_id":"u2","isAdmin":true}`))
		case "DELETE /api/users/u2":
			_, _ = w.Write([]byte(`{"message":"User removed"}`))
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
	repo := NewUserRepository(c)
	ctx := context.Background()

	info, err := repo.Login(ctx, entity.Credentials{Email: "a@b.c", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "jwt", info.Token)
	assert.True(t, info.IsAdmin)

	reg, err := repo.Register(ctx, &entity.User{Name: "Bob", Email: "b@b.c", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "u2", reg.ID)

	prof, err := repo.GetProfile(ctx, "jwt")
	require.NoError(t, err)
	assert.Equal(t, "Ann", prof.Name)

	upd, err := repo.Update(ctx, "jwt", &entity.User{ID: "u2", IsAdmin: true, Password: "x"})
	require.NoError(t, err)
	assert.True(t, upd.IsAdmin)

	require.NoError(t, repo.Delete(ctx, "jwt", "u2"))
}

func TestZeroTimeoutLeavesCallsToTheContext(t *testing.T) {
	c := NewClient("http://api.example.com", 0, nil)
	assert.Zero(t, c.HTTP.Timeout)

	release := make(chan struct{})
	slow := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	slow.HTTP.Timeout = 0
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := NewDiscountRepository(slow).List(ctx, "tok")
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
