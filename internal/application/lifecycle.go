package application

import (
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/discount-catalog/internal/store"
	"github.com/oksasatya/discount-catalog/pkg/helpers"
)

// run drives one request lifecycle on sl: request, call, then success or fail.
func run[T any](logger logrus.FieldLogger, sl *store.Slice[T], call func() (T, error)) store.RequestState[T] {
	sl.Dispatch(store.RequestAction[T]())
	data, err := call()
	if err != nil {
		helpers.LogError(logger, "api call failed", err, logrus.Fields{"slice": sl.Name()})
		return sl.Dispatch(store.FailAction[T](ErrorMessage(err)))
	}
	return sl.Dispatch(store.SuccessAction(data))
}
