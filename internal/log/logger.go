package log

import (
	"go.uber.org/zap"
)

var base = zap.NewNop()

// Init configures the process-wide logger. prod=false даёт dev-консоль.
func Init(prod bool) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if prod {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	base = l
	return l, nil
}

func L() *zap.Logger { return base }

func Infof(format string, args ...any)  { base.Sugar().Infof(format, args...) }
func Errorf(format string, args ...any) { base.Sugar().Errorf(format, args...) }
func Warnf(format string, args ...any)  { base.Sugar().Warnf(format, args...) }
