package restapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/oksasatya/discount-catalog/internal/domain/entity"
	"github.com/oksasatya/discount-catalog/internal/domain/repository"
)

type discountRepository struct {
	c *Client
}

func NewDiscountRepository(c *Client) repository.DiscountRepository {
	return &discountRepository{c: c}
}

func discountPath(id string) string { return "/api/discounts/" + url.PathEscape(id) }

func (r *discountRepository) List(ctx context.Context, token string) ([]entity.Discount, error) {
	out := []entity.Discount{}
	if err := r.c.Do(ctx, http.MethodGet, "/api/discounts", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *discountRepository) Get(ctx context.Context, token, id string) (*entity.Discount, error) {
	var out entity.Discount
	if err := r.c.Do(ctx, http.MethodGet, discountPath(id), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *discountRepository) Create(ctx context.Context, token string, d *entity.Discount) (*entity.Discount, error) {
	var out entity.Discount
	if err := r.c.Do(ctx, http.MethodPost, "/api/discounts", token, d, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *discountRepository) Update(ctx context.Context, token string, d *entity.Discount) (*entity.Discount, error) {
	var out entity.Discount
	if err := r.c.Do(ctx, http.MethodPut, discountPath(d.ID), token, d, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *discountRepository) Delete(ctx context.Context, token, id string) error {
	return r.c.Do(ctx, http.MethodDelete, discountPath(id), token, nil, nil)
}
