package remix

import (
	"context"
	"fmt"

	"github.com/san-kum/remixer/internal/bus"
	"github.com/san-kum/remixer/internal/config"
	"github.com/san-kum/remixer/internal/mqttconn"
	"github.com/san-kum/remixer/internal/sensor"
	"go.uber.org/zap"
)

// Input is an opened sensor source.
type Input struct {
	Source sensor.Source
	Kind   string

	run     func(ctx context.Context) error
	closers []func() error
}

// Run drives sources that need a loop of their own, such as replay playback
// or the websocket listener. It blocks until ctx ends or the source is
// exhausted.
func (in *Input) Run(ctx context.Context) error {
	if in.run == nil {
		<-ctx.Done()
		return nil
	}
	return in.run(ctx)
}

func (in *Input) Close() error {
	var firstErr error
	for i := len(in.closers) - 1; i >= 0; i-- {
		if err := in.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	in.closers = nil
	return firstErr
}

// OpenInput builds the sensor source described by cfg.Sensor.
func OpenInput(cfg *config.Config, logger *zap.Logger) (*Input, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	in := &Input{Kind: cfg.Sensor.Kind}

	switch cfg.Sensor.Kind {
	case config.SensorMock:
		in.Source = sensor.NewMockSource(cfg.Sensor.Interval())

	case config.SensorReplay:
		rs, err := sensor.LoadReplay(cfg.Sensor.File, cfg.Sensor.Realtime)
		if err != nil {
			return nil, err
		}
		logger.Info("replay loaded", zap.String("file", cfg.Sensor.File), zap.Int("samples", rs.Len()))
		in.Source = rs
		in.run = func(ctx context.Context) error {
			if err := rs.Play(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		}

	case config.SensorWebSocket:
		ws := sensor.NewWebSocketServer(cfg.Sensor.Listen, logger)
		in.Source = ws
		in.run = ws.ListenAndServe

	case config.SensorMQTT:
		client, err := mqttconn.Connect(mqttconn.Options{
			Broker:   cfg.Bus.Broker,
			ClientID: clientID(cfg.Bus.ClientID, "sensor"),
		}, logger)
		if err != nil {
			return nil, err
		}
		in.Source = sensor.NewMQTTSource(client, cfg.Bus.TopicPrefix, logger)
		in.closers = append(in.closers, func() error {
			client.Disconnect(250)
			return nil
		})

	default:
		return nil, fmt.Errorf("%w: unknown sensor kind %q", config.ErrInvalid, cfg.Sensor.Kind)
	}

	if cfg.Sensor.Record != "" {
		rec, err := sensor.CreateCSVRecorder(cfg.Sensor.Record)
		if err != nil {
			in.Close()
			return nil, err
		}
		in.Source = sensor.Tee(in.Source, rec)
		in.closers = append(in.closers, rec.Close)
		logger.Info("recording samples", zap.String("file", cfg.Sensor.Record))
	}
	return in, nil
}

// OpenBus builds the parameter bus described by cfg.Bus. The returned
// function releases its connection.
func OpenBus(cfg *config.Config, logger *zap.Logger) (bus.Bus, func(), error) {
	switch cfg.Bus.Kind {
	case config.BusLog:
		return bus.NewLogBus(logger), func() {}, nil
	case config.BusMQTT:
		client, err := mqttconn.Connect(mqttconn.Options{
			Broker:   cfg.Bus.Broker,
			ClientID: clientID(cfg.Bus.ClientID, "bus"),
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return bus.NewMQTTBus(client, cfg.Bus.TopicPrefix, logger), func() { client.Disconnect(250) }, nil
	}
	return nil, nil, fmt.Errorf("%w: unknown bus kind %q", config.ErrInvalid, cfg.Bus.Kind)
}

func clientID(base, role string) string {
	if base == "" {
		return mqttconn.ClientID("remixer-" + role)
	}
	return base + "-" + role
}
