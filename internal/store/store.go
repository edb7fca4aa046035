package store

import (
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/discount-catalog/internal/domain/entity"
)

// Empty is the payload of operations that return nothing.
type Empty = struct{}

type resetter interface {
	Reset()
}

// Store groups the slices of one session.
type Store struct {
	DiscountList    *Slice[[]entity.Discount]
	DiscountDetails *Slice[entity.Discount]
	DiscountCreate  *Slice[entity.Discount]
	DiscountUpdate  *Slice[entity.Discount]
	DiscountDelete  *Slice[Empty]

	UserLogin         *Slice[*entity.UserInfo]
	UserRegister      *Slice[*entity.UserInfo]
	UserDetails       *Slice[entity.User]
	UserUpdateProfile *Slice[*entity.UserInfo]
	UserList          *Slice[[]entity.User]
	UserUpdate        *Slice[entity.User]
	UserDelete        *Slice[Empty]
}

// New builds a Store with every slice at its initial state.
// List slices start with an empty, non-nil collection.
func New(logger logrus.FieldLogger) *Store {
	return &Store{
		DiscountList:    NewSlice("discount_list", []entity.Discount{}, false, logger),
		DiscountDetails: NewSlice("discount_details", entity.Discount{}, true, logger),
		DiscountCreate:  NewSlice("discount_create", entity.Discount{}, false, logger),
		DiscountUpdate:  NewSlice("discount_update", entity.Discount{}, false, logger),
		DiscountDelete:  NewSlice("discount_delete", Empty{}, false, logger),

		UserLogin:         NewSlice[*entity.UserInfo]("user_login", nil, false, logger),
		UserRegister:      NewSlice[*entity.UserInfo]("user_register", nil, false, logger),
		UserDetails:       NewSlice("user_details", entity.User{}, true, logger),
		UserUpdateProfile: NewSlice[*entity.UserInfo]("user_update_profile", nil, false, logger),
		UserList:          NewSlice("user_list", []entity.User{}, false, logger),
		UserUpdate:        NewSlice("user_update", entity.User{}, false, logger),
		UserDelete:        NewSlice("user_delete", Empty{}, false, logger),
	}
}

func (s *Store) slices() []resetter {
	return []resetter{
		s.DiscountList, s.DiscountDetails, s.DiscountCreate, s.DiscountUpdate, s.DiscountDelete,
		s.UserLogin, s.UserRegister, s.UserDetails, s.UserUpdateProfile, s.UserList, s.UserUpdate, s.UserDelete,
	}
}

// ResetAll returns every slice to its initial state. Used on logout.
func (s *Store) ResetAll() {
	for _, sl := range s.slices() {
		sl.Reset()
	}
}
