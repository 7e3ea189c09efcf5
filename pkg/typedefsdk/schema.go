package typedefsdk

import (
	"context"
	"fmt"

	"github.com/osvaldoandrade/typedef/internal/app/validate"
	"github.com/osvaldoandrade/typedef/internal/domain"
)

// Schema is a compiled, well-formed schema ready for validation.
type Schema struct {
	root   domain.Schema
	client *Client
}

// ValidationError locates one schema violation: the path to the rejected
// part of the instance and the path to the schema node that rejected it.
type ValidationError struct {
	InstancePath []string
	SchemaPath   []string
}

// Form names the schema's top-level form.
func (s *Schema) Form() string {
	return s.root.Form().String()
}

// Validate checks instanceJSON against the schema and returns validation
// errors in traversal order; an empty slice means the instance is valid.
// The call fails with ErrMaxDepthExceeded when ref recursion exceeds the
// configured MaxDepth; MaxErrors truncates the result instead of failing.
func (s *Schema) Validate(ctx context.Context, instanceJSON []byte) ([]ValidationError, error) {
	value, err := s.client.decoder.Decode(ctx, instanceJSON)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInstance, err)
	}

	mismatches, err := s.client.engine.Validate(ctx, s.root, value, validate.Options{
		MaxDepth:  s.client.cfg.MaxDepth,
		MaxErrors: s.client.cfg.MaxErrors,
	})
	if err != nil {
		return nil, mapValidateErr(err)
	}

	out := make([]ValidationError, 0, len(mismatches))
	for _, m := range mismatches {
		out = append(out, ValidationError{InstancePath: m.InstancePath, SchemaPath: m.SchemaPath})
	}

	s.client.logger.Debug("validation completed", "errors", len(out))
	return out, nil
}
