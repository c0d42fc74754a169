package logger

import (
	"go.uber.org/zap"
)

// New returns a named sugared logger writing to stderr. Every package
// that logs holds one as a package-level var.
func New(name string) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return l.Named(name).Sugar(), nil
}
