package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/scanmap/server-go/internal/config"
	"github.com/scanmap/server-go/internal/model"
	"github.com/scanmap/server-go/internal/service"
)

const ingestTimeout = 30 * time.Second

// Bridge subscribes to the device ingest topic and feeds published scan
// batches through the same ingestion path as HTTP. Payloads are the same
// JSON array the /ingest endpoint accepts.
type Bridge struct {
	client        mqtt.Client
	topic         string
	ingestService *service.IngestService
}

func NewBridge(cfg *config.Config, ingestService *service.IngestService) (*Bridge, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.MQTTBrokerURL)
	opts.SetClientID(cfg.MQTTClientID)

	if cfg.MQTTUsername != "" {
		opts.SetUsername(cfg.MQTTUsername)
	}
	if cfg.MQTTPassword != "" {
		opts.SetPassword(cfg.MQTTPassword)
	}

	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to mqtt broker: %w", token.Error())
	}

	return &Bridge{
		client:        client,
		topic:         cfg.MQTTIngestTopic,
		ingestService: ingestService,
	}, nil
}

func (b *Bridge) Start() error {
	token := b.client.Subscribe(b.topic, 1, b.handleMessage)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribe to %s: %w", b.topic, token.Error())
	}

	log.Info().Str("topic", b.topic).Msg("mqtt ingest bridge subscribed")
	return nil
}

func (b *Bridge) Close() {
	b.client.Disconnect(250)
	log.Info().Msg("mqtt ingest bridge disconnected")
}

func (b *Bridge) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var reports []model.ScanReport
	if err := json.Unmarshal(msg.Payload(), &reports); err != nil {
		log.Warn().Err(err).Str("topic", msg.Topic()).Msg("dropping malformed mqtt scan batch")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	result, err := b.ingestService.Ingest(ctx, reports)
	if err != nil {
		log.Warn().Err(err).Str("topic", msg.Topic()).Msg("mqtt scan batch rejected")
		return
	}

	log.Debug().
		Int("accepted", result.Accepted).
		Int("total", result.Total).
		Msg("mqtt scan batch ingested")
}
