package application

import (
	"context"
	"errors"
	"sync"

	"github.com/oksasatya/discount-catalog/internal/domain/entity"
)

type fakeDiscounts struct {
	list    []entity.Discount
	err     error
	calls   []string
	created *entity.Discount
}

func (f *fakeDiscounts) List(_ context.Context, token string) ([]entity.Discount, error) {
	f.calls = append(f.calls, "list:"+token)
	return f.list, f.err
}

func (f *fakeDiscounts) Get(_ context.Context, _ string, id string) (*entity.Discount, error) {
	f.calls = append(f.calls, "get:"+id)
	if f.err != nil {
		return nil, f.err
	}
	for _, d := range f.list {
		if d.ID == id {
			d := d
			return &d, nil
		}
	}
	return nil, errors.New("Discount not found")
}

func (f *fakeDiscounts) Create(_ context.Context, _ string, d *entity.Discount) (*entity.Discount, error) {
	f.calls = append(f.calls, "create")
	if f.err != nil {
		return nil, f.err
	}
	out := *d
	out.ID = "new"
	f.created = &out
	return &out, nil
}

func (f *fakeDiscounts) Update(_ context.Context, _ string, d *entity.Discount) (*entity.Discount, error) {
	f.calls = append(f.calls, "update:"+d.ID)
	if f.err != nil {
		return nil, f.err
	}
	out := *d
	return &out, nil
}

func (f *fakeDiscounts) Delete(_ context.Context, _ string, id string) error {
	f.calls = append(f.calls, "delete:"+id)
	return f.err
}

type fakeUsers struct {
	info  *entity.UserInfo
	users []entity.User
	err   error
	calls []string
}

func (f *fakeUsers) Login(_ context.Context, creds entity.Credentials) (*entity.UserInfo, error) {
	f.calls = append(f.calls, "login:"+creds.Email)
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

func (f *fakeUsers) Register(_ context.Context, u *entity.User) (*entity.UserInfo, error) {
	f.calls = append(f.calls, "register:"+u.Email)
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

func (f *fakeUsers) GetProfile(_ context.Context, token string) (*entity.User, error) {
	f.calls = append(f.calls, "profile:"+token)
	if f.err != nil {
		return nil, f.err
	}
	return &entity.User{ID: f.info.ID, Name: f.info.Name, Email: f.info.Email}, nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, _ string, u *entity.User) (*entity.UserInfo, error) {
	f.calls = append(f.calls, "update_profile:"+u.Name)
	if f.err != nil {
		return nil, f.err
	}
	return &entity.UserInfo{ID: u.ID, Name: u.Name, Email: u.Email, Token: "fresh"}, nil
}

func (f *fakeUsers) List(_ context.Context, _ string) ([]entity.User, error) {
	f.calls = append(f.calls, "list")
	return f.users, f.err
}

func (f *fakeUsers) Get(_ context.Context, _ string, id string) (*entity.User, error) {
	f.calls = append(f.calls, "get:"+id)
	if f.err != nil {
		return nil, f.err
	}
	return &entity.User{ID: id, Name: "Target"}, nil
}

func (f *fakeUsers) Update(_ context.Context, _ string, u *entity.User) (*entity.User, error) {
	f.calls = append(f.calls, "update:"+u.ID)
	if f.err != nil {
		return nil, f.err
	}
	out := *u
	return &out, nil
}

func (f *fakeUsers) Delete(_ context.Context, _ string, id string) error {
	f.calls = append(f.calls, "delete:"+id)
	return f.err
}

type fakeSessions struct {
	mu    sync.Mutex
	saved map[string]entity.Session
	err   error
}

func newFakeSessions() *fakeSessions { return &fakeSessions{saved: map[string]entity.Session{}} }

func (f *fakeSessions) Save(_ context.Context, s *entity.Session) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	f.saved[s.ID] = *s
	f.mu.Unlock()
	return nil
}

func (f *fakeSessions) Get(_ context.Context, id string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.saved[id]
	if !ok {
		return nil, errors.New("session not found")
	}
	return &s, nil
}

func (f *fakeSessions) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	delete(f.saved, id)
	f.mu.Unlock()
	return nil
}

type fakePublisher struct {
	msgs []any
	err  error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, body)
	return nil
}
