package kafkatags

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/vashchenko/go_pair_tags/common/models"
)

type PairTagsPublisherConfig struct {
	KafkaServer string
	KafkaTopic  string
}

type PairTagsPublisher struct {
	pairTagsWriter *kafka.Writer
}

// tagEvent is the message payload: the tag plus the chain it belongs to,
// since the registry consumes tags for several networks from one topic.
type tagEvent struct {
	ChainID string             `json:"chain_id"`
	Tag     models.ContractTag `json:"tag"`
}

func NewPairTagsPublisher(config PairTagsPublisherConfig) (*PairTagsPublisher, error) {
	if config.KafkaServer == "" || config.KafkaTopic == "" {
		return nil, errors.New("kafka server and topic are required")
	}

	writer := kafka.Writer{
		Addr:         kafka.TCP(config.KafkaServer),
		Topic:        config.KafkaTopic,
		BatchTimeout: 1 * time.Millisecond,
		Async:        false,
	}

	return &PairTagsPublisher{
		pairTagsWriter: &writer,
	}, nil
}

func (p *PairTagsPublisher) PublishTags(ctx context.Context, chainID string, tags []models.ContractTag) error {
	messages, err := buildTagMessages(chainID, tags)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		return nil
	}

	return p.pairTagsWriter.WriteMessages(ctx, messages...)
}

func (p *PairTagsPublisher) Close() error {
	return p.pairTagsWriter.Close()
}

func buildTagMessages(chainID string, tags []models.ContractTag) ([]kafka.Message, error) {
	messages := make([]kafka.Message, len(tags))
	for i, tag := range tags {
		eventJSON, err := json.Marshal(&tagEvent{
			ChainID: chainID,
			Tag:     tag,
		})
		if err != nil {
			return nil, err
		}
		messages[i] = kafka.Message{
			Key:   []byte(tag.ContractAddress),
			Value: eventJSON,
		}
	}

	return messages, nil
}
