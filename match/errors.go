package match

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthority is returned when an observer attempts to mutate match state.
	ErrNotAuthority = errors.New("not the match authority")
	// ErrAlreadyPrepared is returned by a second PrepareMatch.
	ErrAlreadyPrepared = errors.New("match already prepared")
	// ErrUnknownPlayer is returned for operations on a player id that was never spawned.
	ErrUnknownPlayer = errors.New("unknown player")
)

// PermissionError reports an authority-only operation attempted by an observer.
type PermissionError struct {
	Op string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, ErrNotAuthority)
}

func (e *PermissionError) Is(target error) bool {
	return target == ErrNotAuthority
}
