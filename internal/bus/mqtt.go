package bus

import (
	"strconv"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/san-kum/remixer/internal/mqttconn"
	"go.uber.org/zap"
)

const triggerPayload = "bang"

// MQTTBus publishes scalars to <prefix>/scalar/<name> and triggers to
// <prefix>/trigger/<name> with QoS 0.
type MQTTBus struct {
	client mqtt.Client
	prefix string
	logger *zap.Logger
}

func NewMQTTBus(client mqtt.Client, prefix string, logger *zap.Logger) *MQTTBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MQTTBus{client: client, prefix: prefix, logger: logger.Named("bus")}
}

func (b *MQTTBus) SetScalar(name string, value float64) {
	b.publish(mqttconn.Topic(b.prefix, "scalar", name), strconv.FormatFloat(value, 'g', -1, 64))
}

func (b *MQTTBus) Trigger(name string) {
	b.publish(mqttconn.Topic(b.prefix, "trigger", name), triggerPayload)
}

func (b *MQTTBus) publish(topic, payload string) {
	token := b.client.Publish(topic, 0, false, payload)
	// QoS 0 tokens that are still pending are not waited for.
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			b.logger.Warn("publish failed", zap.String("topic", topic), zap.Error(err))
		}
	default:
	}
}
