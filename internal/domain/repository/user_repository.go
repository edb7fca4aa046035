package repository

import (
	"context"

	"github.com/oksasatya/discount-catalog/internal/domain/entity"
)

// UserRepository defines the user and authentication operations of the external API.
type UserRepository interface {
	Login(ctx context.Context, creds entity.Credentials) (*entity.UserInfo, error)
	Register(ctx context.Context, u *entity.User) (*entity.UserInfo, error)
	GetProfile(ctx context.Context, token string) (*entity.User, error)
	UpdateProfile(ctx context.Context, token string, u *entity.User) (*entity.UserInfo, error)
	List(ctx context.Context, token string) ([]entity.User, error)
	Get(ctx context.Context, token, id string) (*entity.User, error)
	Update(ctx context.Context, token string, u *entity.User) (*entity.User, error)
	Delete(ctx context.Context, token, id string) error
}
