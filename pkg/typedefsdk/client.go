package typedefsdk

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/osvaldoandrade/typedef/internal/app/validate"
	"github.com/osvaldoandrade/typedef/internal/domain"
	"github.com/osvaldoandrade/typedef/internal/infra/rfc3339"
	"github.com/osvaldoandrade/typedef/internal/infra/valuejson"
	"github.com/osvaldoandrade/typedef/internal/platform"
)

// Client compiles JSON Type Definition schemas and validates instances
// against them. A Client and every Schema it compiles are immutable and
// safe for concurrent use.
type Client struct {
	cfg     Config
	logger  *slog.Logger
	decoder valuejson.Decoder
	engine  *validate.Service
}

func New(cfg Config) (*Client, error) {
	normalized, err := normalizeConfig(cfg)
	if err != nil {
		return nil, err
	}

	logger := normalized.Logger
	if logger == nil {
		if normalized.LogLevel == "" && normalized.LogFormat == "" {
			logger = platform.NopLogger()
		} else {
			logger, err = platform.NewLogger(normalized.LogLevel, normalized.LogFormat, normalized.LogOutput)
			if err != nil {
				return nil, err
			}
		}
	}

	return &Client{
		cfg:    normalized,
		logger: logger,
		engine: validate.NewService(rfc3339.Checker{}),
	}, nil
}

// Compile decodes schemaJSON, builds the schema model and runs the
// well-formedness check. Compiling before validating is the documented
// order for untrusted schemas; combined with a non-zero MaxDepth it keeps
// adversarial inputs bounded.
func (c *Client) Compile(ctx context.Context, schemaJSON []byte) (*Schema, error) {
	value, err := c.decoder.Decode(ctx, schemaJSON)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	root, err := domain.SchemaFromValue(value)
	if err != nil {
		return nil, mapSchemaErr(err)
	}
	if err := root.CheckWellFormed(); err != nil {
		return nil, mapSchemaErr(err)
	}

	c.logger.Debug("schema compiled",
		"form", root.Form().String(),
		"definitions", len(root.Definitions))

	return &Schema{root: root, client: c}, nil
}
