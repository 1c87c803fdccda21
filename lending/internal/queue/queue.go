package queue

import (
	"context"

	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/IBM/sarama"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Enqueuer publishes loan events keyed by copy, so the events of one copy
// keep their order within a partition.
type Enqueuer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewEnqueuer(producer sarama.SyncProducer, topic string) *Enqueuer {
	return &Enqueuer{
		producer: producer,
		topic:    topic,
	}
}

func (q *Enqueuer) Publish(_ context.Context, ev model.LoanEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: q.topic,
		Key:   sarama.StringEncoder(ev.CopyID),
		Value: sarama.ByteEncoder(data),
	}
	if _, _, err = q.producer.SendMessage(msg); err != nil {
		return err
	}
	return nil
}

// Nop drops events. Used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, model.LoanEvent) error {
	return nil
}
