package app

import "go.uber.org/zap"

// NewLogger returns a JSON production logger in production and a console
// development logger otherwise, and installs it as the zap global.
func NewLogger(cfg Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
