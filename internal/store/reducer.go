// Package store holds the request-lifecycle state of every API operation.
//
// Each operation owns a Slice. A Slice changes only through Dispatch, which
// applies a pure Reducer to the current state and an Action.
package store

// ActionType tags an Action.
type ActionType int

const (
	Request ActionType = iota
	Success
	Fail
	Reset
)

func (t ActionType) String() string {
	switch t {
	case Request:
		return "request"
	case Success:
		return "success"
	case Fail:
		return "fail"
	case Reset:
		return "reset"
	default:
		return "unknown"
	}
}

// Action is a lifecycle transition. Payload is read on Success, Err on Fail.
type Action[T any] struct {
	Type    ActionType
	Payload T
	Err     string
}

func RequestAction[T any]() Action[T] { return Action[T]{Type: Request} }

func SuccessAction[T any](payload T) Action[T] { return Action[T]{Type: Success, Payload: payload} }

func FailAction[T any](msg string) Action[T] { return Action[T]{Type: Fail, Err: msg} }

func ResetAction[T any]() Action[T] { return Action[T]{Type: Reset} }

// RequestState is the state of one slice. Loading, Success and Error are
// mutually exclusive; consumers must not read Data while Loading or on Error.
type RequestState[T any] struct {
	Loading bool
	Success bool
	Error   string
	Data    T
}

// Reducer computes the next state. It must not mutate its arguments.
type Reducer[T any] func(state RequestState[T], action Action[T]) RequestState[T]

// LifecycleReducer is the reducer shared by every slice. keepDataOnRequest
// leaves the previous payload in place while a new request is in flight.
func LifecycleReducer[T any](initial T, keepDataOnRequest bool) Reducer[T] {
	return func(state RequestState[T], action Action[T]) RequestState[T] {
		switch action.Type {
		case Request:
			next := RequestState[T]{Loading: true, Data: initial}
			if keepDataOnRequest {
				next.Data = state.Data
			}
			return next
		case Success:
			return RequestState[T]{Success: true, Data: action.Payload}
		case Fail:
			return RequestState[T]{Error: action.Err, Data: initial}
		case Reset:
			return RequestState[T]{Data: initial}
		default:
			return state
		}
	}
}
