package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"member-pricing-service/internal/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Invalidator drops cached products.
type Invalidator interface {
	Invalidate(ctx context.Context, ids ...int) error
}

// MessageReader is satisfied by *kafka.Reader.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

const defaultRetryBackoff = 2 * time.Second

type Consumer struct {
	reader  MessageReader
	cache   Invalidator
	backoff time.Duration
}

func NewConsumer(reader MessageReader, cache Invalidator) *Consumer {
	return &Consumer{reader: reader, cache: cache, backoff: defaultRetryBackoff}
}

// Start reads price events until ctx is cancelled or the reader is closed,
// then closes the reader. Other read errors are retried after a pause.
func (c *Consumer) Start(ctx context.Context) {
	defer c.reader.Close()

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				logger.Info().Msg("Price event consumer stopped")
				return
			}
			if errors.Is(err, io.EOF) {
				logger.Warn().Msg("Price event reader closed")
				return
			}
			logger.Error().Msgf("Error reading message: %v", err)

			select {
			case <-ctx.Done():
				logger.Info().Msg("Price event consumer stopped")
				return
			case <-time.After(c.backoff):
			}
			continue
		}

		c.processMessage(ctx, msg)
	}
}

// processMessage handles one event.
// key -> "product.prices_updated.<id>" or "product.created.<id>"
func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message) {
	listKey := strings.Split(string(msg.Key), ".")
	if len(listKey) != 3 || listKey[0] != "product" {
		logger.Error().Msgf("Unexpected message key: %q", msg.Key)
		return
	}
	eventType := listKey[1]

	var event entity.PriceEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		logger.Error().Msgf("Error unmarshalling message: %v", err)
		return
	}

	switch eventType {
	case entity.EventPricesUpdated:
		ids := append([]int{event.ProductID}, event.Variations...)
		if event.ParentID != 0 {
			ids = append(ids, event.ParentID)
		}
		if err := c.cache.Invalidate(ctx, ids...); err != nil {
			logger.Error().Msgf("Error invalidating cache for product %d: %v", event.ProductID, err)
			return
		}
		logger.Info().Str("event_id", event.ID).Msgf("Invalidated cached prices for product %d", event.ProductID)
	case entity.EventProductCreated:
		// nothing cached yet
	default:
		logger.Warn().Msgf("Unknown price event: %s", eventType)
	}
}
