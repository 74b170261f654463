package utils

import "go.uber.org/zap"

// NewLogger builds the command's logger. Both variants write to stderr so
// that stdout carries only scores. debug selects zap's development preset
// (console lines at debug level); otherwise the production preset logs JSON
// at info level with stack traces limited to errors.
func NewLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
