package fnc

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidShape  = errors.New("invalid state shape")
	ErrInvalidVertex = errors.New("invalid vertex coordinate")
	ErrInvalidEdge   = errors.New("invalid edge")
	ErrOutOfBounds   = errors.New("edge vertex index out of bounds")
)

// StateError is a fail-fast diagnostic from SetState. Index is the offending
// entry, or -1 for shape errors.
type StateError struct {
	Kind   error
	Index  int
	Detail string
}

func (e *StateError) Error() string {
	msg := e.Kind.Error()
	if e.Index >= 0 {
		msg = fmt.Sprintf("%s at index %d", msg, e.Index)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is matches the sentinel kind so callers can use errors.Is.
func (e *StateError) Is(target error) bool {
	return e.Kind == target
}

func (e *StateError) Unwrap() error {
	return e.Kind
}

func shapeError(detail string) error {
	return &StateError{Kind: ErrInvalidShape, Index: -1, Detail: detail}
}

func indexError(kind error, i int, detail string) error {
	return &StateError{Kind: kind, Index: i, Detail: detail}
}
