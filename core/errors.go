package core

import "errors"

var (
	ErrNotFound    = errors.New("vista: not found")
	ErrStale       = errors.New("vista: navigation superseded")
	ErrUnknownView = errors.New("vista: unknown view")
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
