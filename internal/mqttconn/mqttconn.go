// Package mqttconn opens the MQTT connections used by the parameter bus and
// the MQTT sensor source.
package mqttconn

import (
	"errors"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrTimeout = errors.New("mqtt: operation timed out")

type Options struct {
	Broker         string
	ClientID       string
	ConnectTimeout time.Duration
}

// ClientID returns a unique client id with the given prefix.
func ClientID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}

// Topic joins topic levels, dropping empty ones.
func Topic(levels ...string) string {
	parts := make([]string, 0, len(levels))
	for _, l := range levels {
		l = strings.Trim(l, "/")
		if l != "" {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, "/")
}

func Connect(opts Options, logger *zap.Logger) (mqtt.Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.ClientID == "" {
		opts.ClientID = ClientID("remixer")
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	co := mqtt.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(opts.ConnectTimeout).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			logger.Warn("mqtt connection lost", zap.String("broker", opts.Broker), zap.Error(err))
		})

	client := mqtt.NewClient(co)
	if err := Wait(client.Connect(), opts.ConnectTimeout); err != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", opts.Broker, err)
	}
	logger.Info("connected to mqtt broker",
		zap.String("broker", opts.Broker),
		zap.String("client_id", opts.ClientID))
	return client, nil
}

// Wait blocks until t completes or timeout elapses.
func Wait(t mqtt.Token, timeout time.Duration) error {
	if !t.WaitTimeout(timeout) {
		return ErrTimeout
	}
	return t.Error()
}
