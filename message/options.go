package message

import (
	"log/slog"
)

// Option configures a Catalog.
type Option func(*Catalog)

// WithDefaultLanguage sets the language used when no requested language
// matches and for codes missing from the matched language. Default is "en".
func WithDefaultLanguage(lang string) Option {
	return func(c *Catalog) {
		if lang != "" {
			c.defaultLang = lang
		}
	}
}

// WithLogger provides a customizable logger for the catalog.
// If not specified, a discard logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMissingLogging controls whether codes without a template are logged at
// debug level. Default is false to avoid excessive logging.
func WithMissingLogging(log bool) Option {
	return func(c *Catalog) {
		c.logMissing = log
	}
}
