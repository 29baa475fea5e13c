package logging

import (
	"strings"

	"go.uber.org/zap"
)

// New builds the application logger. "prod" and "production" select the
// JSON production config, everything else the console development config.
func New(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}
