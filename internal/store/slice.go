package store

import (
	"expvar"
	"sync"

	"github.com/sirupsen/logrus"
)

var dispatches = expvar.NewMap("store_dispatches")

// Slice is a mutex-guarded state container for one operation.
type Slice[T any] struct {
	name    string
	initial T
	reduce  Reducer[T]
	logger  logrus.FieldLogger

	mu    sync.Mutex
	state RequestState[T]
}

// NewSlice builds a slice starting at its initial state.
func NewSlice[T any](name string, initial T, keepDataOnRequest bool, logger logrus.FieldLogger) *Slice[T] {
	return &Slice[T]{
		name:    name,
		initial: initial,
		reduce:  LifecycleReducer(initial, keepDataOnRequest),
		logger:  logger,
		state:   RequestState[T]{Data: initial},
	}
}

// Name identifies the slice in logs and metrics.
func (s *Slice[T]) Name() string { return s.name }

// Dispatch applies action and returns the resulting state.
func (s *Slice[T]) Dispatch(action Action[T]) RequestState[T] {
	s.mu.Lock()
	s.state = s.reduce(s.state, action)
	next := s.state
	s.mu.Unlock()

	dispatches.Add(s.name+"."+action.Type.String(), 1)
	if s.logger != nil {
		entry := s.logger.WithFields(logrus.Fields{"slice": s.name, "action": action.Type.String()})
		if action.Type == Fail {
			entry.WithField("error", action.Err).Debug("store dispatch")
		} else {
			entry.Debug("store dispatch")
		}
	}
	return next
}

// State returns a snapshot of the current state.
func (s *Slice[T]) State() RequestState[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Reset returns the slice to its initial state.
func (s *Slice[T]) Reset() {
	s.Dispatch(ResetAction[T]())
}
