// Package output renders gate results for terminals, JSON consumers and
// markdown reports.
package output

import (
	"fmt"

	"github.com/dotcommander/gradegate/internal/config"
	"github.com/dotcommander/gradegate/internal/gate"
)

// Formatter renders a gate result.
type Formatter interface {
	Format(result *gate.Result) error
}

// New creates the formatter for the configured format.
func New(format string, cfg *config.Config) (Formatter, error) {
	switch format {
	case "console":
		return NewConsoleFormatter(cfg.Quiet, cfg.Verbose), nil
	case "json":
		return NewJSONFormatter(cfg.Quiet, true, cfg.Output), nil
	case "markdown":
		return NewMarkdownFormatter(cfg.Quiet, cfg.Verbose, cfg.Output), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
