package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New builds a sugared zap logger for the given mode ("prod"/"production"
// gets JSON output, anything else the development console encoder).
func New(mode string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return zapLogger.Sugar(), nil
}
