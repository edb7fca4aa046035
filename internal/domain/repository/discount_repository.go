package repository

import (
	"context"

	"github.com/oksasatya/discount-catalog/internal/domain/entity"
)

// DiscountRepository defines the discount operations of the external API.
// token may be empty for anonymous calls.
type DiscountRepository interface {
	List(ctx context.Context, token string) ([]entity.Discount, error)
	Get(ctx context.Context, token, id string) (*entity.Discount, error)
	Create(ctx context.Context, token string, d *entity.Discount) (*entity.Discount, error)
	Update(ctx context.Context, token string, d *entity.Discount) (*entity.Discount, error)
	Delete(ctx context.Context, token, id string) error
}
