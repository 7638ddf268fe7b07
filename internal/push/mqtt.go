package push

import (
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

// Publisher tells a user's other devices that the remote tracker changed so
// they can reload. Delivery is best effort; the tracker never waits on it.
type Publisher interface {
	TrackerUpdated(username string)
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) TrackerUpdated(string) {}

type MQTTPublisher struct {
	client mqtt.Client
}

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Error().Err(err).Msg("MQTT connection lost")
}

// NewMQTTPublisher connects to the broker and returns a publisher for
// tracker-updated events.
func NewMQTTPublisher(brokerURL, clientID string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	return &MQTTPublisher{client: client}, nil
}

// TrackerUpdated publishes to the user's update topic. Errors are logged and
// dropped; a missed broadcast only delays another device's refresh.
func (p *MQTTPublisher) TrackerUpdated(username string) {
	topic := fmt.Sprintf("qada/%s/updates", username)
	token := p.client.Publish(topic, 1, false, []byte("updated"))
	token.Wait()
	if token.Error() != nil {
		log.Error().Err(token.Error()).Str("topic", topic).Msg("failed to publish tracker update")
	}
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
