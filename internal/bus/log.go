package bus

import "go.uber.org/zap"

type LogBus struct {
	logger *zap.Logger
}

func NewLogBus(logger *zap.Logger) *LogBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogBus{logger: logger.Named("bus")}
}

func (b *LogBus) SetScalar(name string, value float64) {
	b.logger.Debug("scalar", zap.String("name", name), zap.Float64("value", value))
}

func (b *LogBus) Trigger(name string) {
	b.logger.Info("trigger", zap.String("name", name))
}
