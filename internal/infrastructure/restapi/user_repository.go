package restapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/oksasatya/discount-catalog/internal/domain/entity"
	"github.com/oksasatya/discount-catalog/internal/domain/repository"
)

type userRepository struct {
	c *Client
}

func NewUserRepository(c *Client) repository.UserRepository {
	return &userRepository{c: c}
}

func userPath(id string) string { return "/api/users/" + url.PathEscape(id) }

func (r *userRepository) Login(ctx context.Context, creds entity.Credentials) (*entity.UserInfo, error) {
	var out entity.UserInfo
	if err := r.c.Do(ctx, http.MethodPost, "/api/users/login", "", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *userRepository) Register(ctx context.Context, u *entity.User) (*entity.UserInfo, error) {
	body := map[string]string{"name": u.Name, "email": u.Email, "password": u.Password}
	var out entity.UserInfo
	if err := r.c.Do(ctx, http.MethodPost, "/api/users", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *userRepository) GetProfile(ctx context.Context, token string) (*entity.User, error) {
	var out entity.User
	if err := r.c.Do(ctx, http.MethodGet, "/api/users/profile", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, token string, u *entity.User) (*entity.UserInfo, error) {
	var out entity.UserInfo
	if err := r.c.Do(ctx, http.MethodPut, "/api/users/profile", token, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *userRepository) List(ctx context.Context, token string) ([]entity.User, error) {
	out := []entity.User{}
	if err := r.c.Do(ctx, http.MethodGet, "/api/users", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *userRepository) Get(ctx context.Context, token, id string) (*entity.User, error) {
	var out entity.User
	if err := r.c.Do(ctx, http.MethodGet, userPath(id), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update sends the admin-editable fields only.
func (r *userRepository) Update(ctx context.Context, token string, u *entity.User) (*entity.User, error) {
	body := struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		IsAdmin bool   `json:"isAdmin"`
	}{u.Name, u.Email, u.IsAdmin}
	var out entity.User
	if err := r.c.Do(ctx, http.MethodPut, userPath(u.ID), token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *userRepository) Delete(ctx context.Context, token, id string) error {
	return r.c.Do(ctx, http.MethodDelete, userPath(id), token, nil, nil)
}
