package sensor

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/san-kum/remixer/internal/mqttconn"
	"go.uber.org/zap"
)

// MQTTSource receives JSON samples on <prefix>/sensor/<kind>.
type MQTTSource struct {
	client  mqtt.Client
	prefix  string
	logger  *zap.Logger
	timeout time.Duration
}

func NewMQTTSource(client mqtt.Client, prefix string, logger *zap.Logger) *MQTTSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MQTTSource{client: client, prefix: prefix, logger: logger, timeout: 5 * time.Second}
}

func (m *MQTTSource) Topic(kind Kind) string {
	return mqttconn.Topic(m.prefix, "sensor", string(kind))
}

func (m *MQTTSource) Subscribe(kind Kind, h Handler) (Subscription, error) {
	topic := m.Topic(kind)
	token := m.client.Subscribe(topic, 0, func(_ mqtt.Client, msg mqtt.Message) {
		s, err := decodeSample(kind, msg.Payload())
		if err != nil {
			m.logger.Debug("dropping malformed sample", zap.String("topic", msg.Topic()), zap.Error(err))
			return
		}
		h(s)
	})
	if err := mqttconn.Wait(token, m.timeout); err != nil {
		return nil, fmt.Errorf("%w: subscribe %s: %v", ErrUnavailable, topic, err)
	}
	m.logger.Info("subscribed to sensor topic", zap.String("topic", topic))

	var once sync.Once
	return subscriptionFunc(func() error {
		var err error
		once.Do(func() {
			err = mqttconn.Wait(m.client.Unsubscribe(topic), m.timeout)
		})
		return err
	}), nil
}

func decodeSample(kind Kind, payload []byte) (Sample, error) {
	var s Sample
	if err := json.Unmarshal(payload, &s); err != nil {
		return Sample{}, err
	}
	s.Kind = kind
	if s.TimestampMs == 0 {
		s.TimestampMs = time.Now().UnixMilli()
	}
	return s, nil
}
