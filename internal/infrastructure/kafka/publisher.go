package publisher

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
)

type KafkaConfig struct {
	Brokers      []string
	AuctionTopic string
	DisputeTopic string
	Username     string
	Password     string
	Mechanism    string
	TLSEnabled   bool
}

// KafkaPublisher is the notification sink boundary. Callers publish from
// goroutines and log failures; a dead broker never blocks or aborts a
// state transition.
type KafkaPublisher struct {
	auctionWriter *kafka.Writer
	disputeWriter *kafka.Writer
}

func NewKafkaPublisher(cfg KafkaConfig) (*KafkaPublisher, error) {
	transport := &kafka.Transport{}

	if cfg.TLSEnabled {
		transport.TLS = &tls.Config{}
	}

	if cfg.Username != "" {
		var mechanism sasl.Mechanism
		switch cfg.Mechanism {
		case "", "PLAIN":
			mechanism = plain.Mechanism{Username: cfg.Username, Password: cfg.Password}
		case "SCRAM-SHA-256":
			m, err := scram.Mechanism(scram.SHA256, cfg.Username, cfg.Password)
			if err != nil {
				return nil, err
			}
			mechanism = m
		case "SCRAM-SHA-512":
			m, err := scram.Mechanism(scram.SHA512, cfg.Username, cfg.Password)
			if err != nil {
				return nil, err
			}
			mechanism = m
		default:
			return nil, fmt.Errorf("unknown sasl mechanism: %s", cfg.Mechanism)
		}
		transport.SASL = mechanism
	}

	newWriter := func(topic string) *kafka.Writer {
		return &kafka.Writer{
			Addr:      kafka.TCP(cfg.Brokers...),
			Topic:     topic,
			Balancer:  &kafka.LeastBytes{},
			Transport: transport,
		}
	}

	return &KafkaPublisher{
		auctionWriter: newWriter(cfg.AuctionTopic),
		disputeWriter: newWriter(cfg.DisputeTopic),
	}, nil
}

func (k *KafkaPublisher) PublishAuctionEvent(event domain.AuctionEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return k.auctionWriter.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(event.ItemID),
		Value: msg,
		Time:  time.Now(),
	})
}

func (k *KafkaPublisher) PublishDisputeEvent(event domain.DisputeEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return k.disputeWriter.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(event.TransactionID),
		Value: msg,
		Time:  time.Now(),
	})
}
