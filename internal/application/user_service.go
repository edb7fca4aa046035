package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/discount-catalog/internal/domain/entity"
	repo "github.com/oksasatya/discount-catalog/internal/domain/repository"
	"github.com/oksasatya/discount-catalog/internal/store"
	"github.com/oksasatya/discount-catalog/pkg/helpers"
)

// UserService covers authentication, the own profile and admin user management.
type UserService struct {
	Repo          repo.UserRepository
	Sessions      repo.SessionRepository
	Stores        *store.Registry
	SessionTTL    time.Duration
	ConfirmPhrase string
	Logger        logrus.FieldLogger

	now func() time.Time
}

func NewUserService(r repo.UserRepository, sessions repo.SessionRepository, stores *store.Registry, ttl time.Duration, confirmPhrase string, logger logrus.FieldLogger) *UserService {
	return &UserService{
		Repo:          r,
		Sessions:      sessions,
		Stores:        stores,
		SessionTTL:    ttl,
		ConfirmPhrase: confirmPhrase,
		Logger:        logger,
		now:           time.Now,
	}
}

// Login authenticates creds. On success a session is saved and st becomes its store.
func (s *UserService) Login(ctx context.Context, st *store.Store, creds entity.Credentials) (*entity.Session, store.RequestState[*entity.UserInfo]) {
	state := run(s.Logger, st.UserLogin, func() (*entity.UserInfo, error) {
		return s.Repo.Login(ctx, creds)
	})
	if !state.Success {
		return nil, state
	}
	sess, err := s.startSession(ctx, st, state.Data)
	if err != nil {
		return nil, st.UserLogin.Dispatch(store.FailAction[*entity.UserInfo](ErrorMessage(err)))
	}
	return sess, state
}

// Register creates the account and logs it in. A password mismatch returns
// ErrPasswordMismatch without dispatching anything.
func (s *UserService) Register(ctx context.Context, st *store.Store, u entity.User, confirmPassword string) (*entity.Session, store.RequestState[*entity.UserInfo], error) {
	if u.Password != confirmPassword {
		return nil, st.UserRegister.State(), ErrPasswordMismatch
	}
	state := run(s.Logger, st.UserRegister, func() (*entity.UserInfo, error) {
		return s.Repo.Register(ctx, &u)
	})
	if !state.Success {
		return nil, state, nil
	}
	st.UserLogin.Dispatch(store.SuccessAction(state.Data))
	sess, err := s.startSession(ctx, st, state.Data)
	if err != nil {
		return nil, st.UserRegister.Dispatch(store.FailAction[*entity.UserInfo](ErrorMessage(err))), nil
	}
	return sess, state, nil
}

func (s *UserService) startSession(ctx context.Context, st *store.Store, info *entity.UserInfo) (*entity.Session, error) {
	now := s.now()
	sess := &entity.Session{
		ID:        uuid.NewString(),
		Token:     info.Token,
		User:      *info,
		CreatedAt: now,
		ExpiresAt: now.Add(s.SessionTTL),
	}
	if err := s.Sessions.Save(ctx, sess); err != nil {
		helpers.LogError(s.Logger, "save session failed", err, logrus.Fields{"user_id": info.ID})
		return nil, err
	}
	s.Stores.Attach(sess.ID, st, sess.ExpiresAt)
	helpers.LogInfo(s.Logger, "session started", logrus.Fields{"user_id": info.ID, "session_id": sess.ID})
	return sess, nil
}

// Logout destroys the session and every piece of state tied to it.
func (s *UserService) Logout(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}
	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		helpers.LogError(s.Logger, "delete session failed", err, logrus.Fields{"session_id": sessionID})
	}
	s.Stores.For(sessionID).ResetAll()
	s.Stores.Drop(sessionID)
}

// Profile loads the signed-in user into the details slice.
func (s *UserService) Profile(ctx context.Context, st *store.Store, sess *entity.Session) store.RequestState[entity.User] {
	return run(s.Logger, st.UserDetails, func() (entity.User, error) {
		u, err := s.Repo.GetProfile(ctx, sess.Token)
		if err != nil {
			return entity.User{}, err
		}
		return *u, nil
	})
}

// UpdateProfile saves the own profile and refreshes the session's user info.
// An empty password keeps the current one.
func (s *UserService) UpdateProfile(ctx context.Context, st *store.Store, sess *entity.Session, u entity.User, confirmPassword string) (store.RequestState[*entity.UserInfo], error) {
	if u.Password != confirmPassword {
		return st.UserUpdateProfile.State(), ErrPasswordMismatch
	}
	u.ID = sess.User.ID
	state := run(s.Logger, st.UserUpdateProfile, func() (*entity.UserInfo, error) {
		return s.Repo.UpdateProfile(ctx, sess.Token, &u)
	})
	if !state.Success || state.Data == nil {
		return state, nil
	}

	info := *state.Data
	if info.Token == "" {
		info.Token = sess.Token
	}
	sess.User = info
	sess.Token = info.Token
	if err := s.Sessions.Save(ctx, sess); err != nil {
		helpers.LogError(s.Logger, "refresh session failed", err, logrus.Fields{"session_id": sess.ID})
	}
	st.UserLogin.Dispatch(store.SuccessAction(&info))
	st.UserDetails.Dispatch(store.SuccessAction(entity.User{ID: info.ID, Name: info.Name, Email: info.Email, IsAdmin: info.IsAdmin}))
	return state, nil
}

func (s *UserService) List(ctx context.Context, st *store.Store, token string) store.RequestState[[]entity.User] {
	return run(s.Logger, st.UserList, func() ([]entity.User, error) {
		users, err := s.Repo.List(ctx, token)
		if users == nil && err == nil {
			users = []entity.User{}
		}
		return users, err
	})
}

func (s *UserService) Details(ctx context.Context, st *store.Store, token, id string) store.RequestState[entity.User] {
	return run(s.Logger, st.UserDetails, func() (entity.User, error) {
		u, err := s.Repo.Get(ctx, token, id)
		if err != nil {
			return entity.User{}, err
		}
		return *u, nil
	})
}

// Update saves an admin edit and mirrors the result into the details slice.
func (s *UserService) Update(ctx context.Context, st *store.Store, token string, u entity.User) store.RequestState[entity.User] {
	state := run(s.Logger, st.UserUpdate, func() (entity.User, error) {
		updated, err := s.Repo.Update(ctx, token, &u)
		if err != nil {
			return entity.User{}, err
		}
		return *updated, nil
	})
	if state.Success {
		st.UserDetails.Dispatch(store.SuccessAction(state.Data))
	}
	return state
}

// Delete removes targetID. It refuses, without dispatching, when confirmText
// is not exactly the confirm phrase or when actorID deletes itself.
func (s *UserService) Delete(ctx context.Context, st *store.Store, token, actorID, targetID, confirmText string) (store.RequestState[store.Empty], error) {
	if confirmText != s.ConfirmPhrase {
		return st.UserDelete.State(), ErrConfirmMismatch
	}
	if actorID != "" && actorID == targetID {
		return st.UserDelete.State(), ErrSelfDelete
	}
	return run(s.Logger, st.UserDelete, func() (store.Empty, error) {
		return store.Empty{}, s.Repo.Delete(ctx, token, targetID)
	}), nil
}

func (s *UserService) ResetUpdate(st *store.Store) { st.UserUpdate.Reset() }

func (s *UserService) ResetUpdateProfile(st *store.Store) { st.UserUpdateProfile.Reset() }
