package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrModelUnavailable    = errors.New("model unavailable")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrPredictionEmpty     = errors.New("crop prediction failed")
	ErrTemporary           = errors.New("temporary failure")
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

// CauseMessage walks to the innermost wrapped error so transport layers can
// surface the human-readable cause without the operation chain.
func CauseMessage(err error) string {
	for err != nil {
		if m, ok := err.(interface{ Unwrap() []error }); ok {
			wrapped := m.Unwrap()
			if len(wrapped) == 0 {
				break
			}
			err = wrapped[len(wrapped)-1]
			continue
		}
		inner := errors.Unwrap(err)
		if inner == nil {
			break
		}
		err = inner
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
