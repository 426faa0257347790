// Package logging builds the process logger and keeps credentials out of
// log output.
package logging

import "go.uber.org/zap"

// New returns the process logger. The local environment gets the
// human-readable development encoder; everything else logs structured
// JSON.
func New(env string, debug bool) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "local" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
