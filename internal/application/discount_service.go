package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/discount-catalog/internal/domain/entity"
	repo "github.com/oksasatya/discount-catalog/internal/domain/repository"
	"github.com/oksasatya/discount-catalog/internal/store"
)

// DiscountService dispatches the lifecycle of every discount operation into a session's store.
type DiscountService struct {
	Repo   repo.DiscountRepository
	Logger logrus.FieldLogger
}

func NewDiscountService(r repo.DiscountRepository, logger logrus.FieldLogger) *DiscountService {
	return &DiscountService{Repo: r, Logger: logger}
}

func (s *DiscountService) List(ctx context.Context, st *store.Store, token string) store.RequestState[[]entity.Discount] {
	return run(s.Logger, st.DiscountList, func() ([]entity.Discount, error) {
		list, err := s.Repo.List(ctx, token)
		if list == nil && err == nil {
			list = []entity.Discount{}
		}
		return list, err
	})
}

func (s *DiscountService) Details(ctx context.Context, st *store.Store, token, id string) store.RequestState[entity.Discount] {
	return run(s.Logger, st.DiscountDetails, func() (entity.Discount, error) {
		d, err := s.Repo.Get(ctx, token, id)
		if err != nil {
			return entity.Discount{}, err
		}
		return *d, nil
	})
}

func (s *DiscountService) Create(ctx context.Context, st *store.Store, token string, d entity.Discount) store.RequestState[entity.Discount] {
	return run(s.Logger, st.DiscountCreate, func() (entity.Discount, error) {
		created, err := s.Repo.Create(ctx, token, &d)
		if err != nil {
			return entity.Discount{}, err
		}
		return *created, nil
	})
}

// Update fails without calling the API when d has no id.
func (s *DiscountService) Update(ctx context.Context, st *store.Store, token string, d entity.Discount) store.RequestState[entity.Discount] {
	if strings.TrimSpace(d.ID) == "" {
		return st.DiscountUpdate.Dispatch(store.FailAction[entity.Discount](ErrMissingID.Error()))
	}
	state := run(s.Logger, st.DiscountUpdate, func() (entity.Discount, error) {
		updated, err := s.Repo.Update(ctx, token, &d)
		if err != nil {
			return entity.Discount{}, err
		}
		return *updated, nil
	})
	if state.Success {
		st.DiscountDetails.Dispatch(store.SuccessAction(state.Data))
	}
	return state
}

func (s *DiscountService) Delete(ctx context.Context, st *store.Store, token, id string) store.RequestState[store.Empty] {
	return run(s.Logger, st.DiscountDelete, func() (store.Empty, error) {
		return store.Empty{}, s.Repo.Delete(ctx, token, id)
	})
}

func (s *DiscountService) ResetCreate(st *store.Store) { st.DiscountCreate.Reset() }

func (s *DiscountService) ResetUpdate(st *store.Store) { st.DiscountUpdate.Reset() }

func (s *DiscountService) ResetDelete(st *store.Store) { st.DiscountDelete.Reset() }
