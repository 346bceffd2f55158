package card

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrNotFound         = errors.New("card not found")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNotAuthorized    = errors.New("not authorized")
	ErrInvalidData      = errors.New("invalid card data")
	ErrInvalidValidity  = errors.New("validity end must be after validity start")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidData, fmt.Sprintf(format, args...))
}

func itoa64(v int64) string {
	return strconv.FormatInt(v, 10)
}
