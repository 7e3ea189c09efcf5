package typedefsdk

import (
	"errors"
	"fmt"

	"github.com/osvaldoandrade/typedef/internal/app/validate"
	"github.com/osvaldoandrade/typedef/internal/domain"
)

var (
	ErrNegativeLimit    = errors.New("typedef-sdk: limits must be non-negative")
	ErrInvalidSchema    = errors.New("typedef-sdk: invalid schema")
	ErrInvalidInstance  = errors.New("typedef-sdk: instance is not valid json")
	ErrMaxDepthExceeded = errors.New("typedef-sdk: max ref depth exceeded")
)

func mapSchemaErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidSchema) {
		return fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	return err
}

func mapValidateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, validate.ErrMaxDepthExceeded) {
		return ErrMaxDepthExceeded
	}
	if errors.Is(err, domain.ErrInvalidSchema) {
		return fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	return err
}
