package renderer

import (
	"go.uber.org/zap"

	"github.com/df07/pathtracer/pkg/core"
)

// zapLogger adapts a zap.SugaredLogger to core.Logger.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewLogger builds the default production logger (JSON-encoded, info level)
// and returns a sync function for the caller to run at process exit.
func NewLogger() (core.Logger, func(), error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, func() {}, err
	}
	sugar := l.Sugar()
	return &zapLogger{sugar: sugar}, func() { _ = l.Sync() }, nil
}

func (z *zapLogger) Printf(format string, args ...interface{}) {
	z.sugar.Infof(format, args...)
}
