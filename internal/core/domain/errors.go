package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrIngestion         = errors.New("ingestion failed")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrBudgetExceeded    = errors.New("budget exceeded")
	ErrRunNotFound       = errors.New("run not found")
	ErrTemporary         = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
