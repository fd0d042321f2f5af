package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/chrisdamba/commutetracker/internal/models"
	"github.com/rs/zerolog/log"
)

// KafkaOutput publishes each record as JSON, keyed by its home address or origin.
type KafkaOutput struct {
	producer sarama.SyncProducer
}

func NewKafkaOutput(brokers string) (*KafkaOutput, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 0
	saramaConfig.Producer.Return.Successes = true // required by SyncProducer
	saramaConfig.Net.DialTimeout = 10 * time.Second
	saramaConfig.Net.ReadTimeout = 10 * time.Second
	saramaConfig.Net.WriteTimeout = 10 * time.Second

	brokerList := strings.Split(brokers, ",")

	producer, err := sarama.NewSyncProducer(brokerList, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama producer: %w", err)
	}

	log.Info().Strs("brokers", brokerList).Msg("kafka producer created")
	return NewKafkaOutputFromProducer(producer), nil
}

func NewKafkaOutputFromProducer(p sarama.SyncProducer) *KafkaOutput {
	return &KafkaOutput{producer: p}
}

func (k *KafkaOutput) WriteRecord(topic string, rec models.Record) error {
	if k.producer == nil {
		return fmt.Errorf("kafka producer is closed")
	}

	msg, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	_, _, err = k.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(rec.Key()),
		Value: sarama.ByteEncoder(msg),
	})
	if err != nil {
		return fmt.Errorf("send to topic %s: %w", topic, err)
	}
	return nil
}

func (k *KafkaOutput) Close() error {
	if k.producer == nil {
		return nil
	}
	err := k.producer.Close()
	k.producer = nil
	return err
}
