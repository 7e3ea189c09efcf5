package typedefsdk

import (
	"io"
	"os"

	"log/slog"
)

// Config defines the SDK behavior for schema compilation and validation.
type Config struct {
	// MaxDepth bounds ref-following recursion per Validate call; 0 means
	// unlimited, which is only safe for trusted schemas.
	MaxDepth int
	// MaxErrors caps the number of validation errors returned; 0 returns
	// them all.
	MaxErrors int

	LogLevel  string
	LogFormat string
	LogOutput io.Writer    // defaults to os.Stderr
	Logger    *slog.Logger // overrides LogLevel/LogFormat/LogOutput when set
}

// DefaultConfig returns defaults that are safe against untrusted schemas.
func DefaultConfig() Config {
	return Config{MaxDepth: 32}
}

func normalizeConfig(cfg Config) (Config, error) {
	if cfg.MaxDepth < 0 || cfg.MaxErrors < 0 {
		return cfg, ErrNegativeLimit
	}
	if cfg.LogOutput == nil {
		cfg.LogOutput = os.Stderr
	}
	return cfg, nil
}
